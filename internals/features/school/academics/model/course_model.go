package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`

	CourseCode  string `gorm:"column:course_code;type:varchar(20);not null;uniqueIndex:uq_courses_code" json:"course_code"`
	CourseTitle string `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`

	CourseCredits *int `gorm:"column:course_credits" json:"course_credits,omitempty"`

	// nullable; courses without a valid teacher are skipped by the form builder
	CourseTeacherID *uuid.UUID `gorm:"column:course_teacher_id;type:uuid;index" json:"course_teacher_id,omitempty"`

	// ACTIVE | INACTIVE
	CourseStatus string `gorm:"column:course_status;type:varchar(10);not null;default:'ACTIVE'" json:"course_status"`

	CourseCreatedAt time.Time `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
