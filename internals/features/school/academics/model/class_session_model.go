package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSessionModel is one scheduled meeting of a class for a course; the
// attendance feature hangs one row per student off each session.
type ClassSessionModel struct {
	ClassSessionID        uuid.UUID  `gorm:"column:class_session_id;type:uuid;primaryKey" json:"class_session_id"`
	ClassSessionClassID   uuid.UUID  `gorm:"column:class_session_class_id;type:uuid;not null;index" json:"class_session_class_id"`
	ClassSessionCourseID  uuid.UUID  `gorm:"column:class_session_course_id;type:uuid;not null;index" json:"class_session_course_id"`
	ClassSessionTeacherID *uuid.UUID `gorm:"column:class_session_teacher_id;type:uuid" json:"class_session_teacher_id,omitempty"`

	ClassSessionDate    time.Time  `gorm:"column:class_session_date;type:date;not null" json:"class_session_date"`
	ClassSessionStartAt *time.Time `gorm:"column:class_session_start_at" json:"class_session_start_at,omitempty"`
	ClassSessionEndAt   *time.Time `gorm:"column:class_session_end_at" json:"class_session_end_at,omitempty"`

	ClassSessionCreatedAt time.Time `gorm:"column:class_session_created_at;not null;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time `gorm:"column:class_session_updated_at;not null;autoUpdateTime" json:"class_session_updated_at"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionID == uuid.Nil {
		m.ClassSessionID = uuid.New()
	}
	return nil
}
