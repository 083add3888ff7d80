package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID     uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentUserID uuid.UUID `gorm:"column:student_user_id;type:uuid;not null;index" json:"student_user_id"`

	// nullable: students without a class assignment get empty feedback forms
	StudentClassID *uuid.UUID `gorm:"column:student_class_id;type:uuid;index" json:"student_class_id,omitempty"`

	StudentCode         string    `gorm:"column:student_code;type:varchar(20);not null;uniqueIndex:uq_students_code" json:"student_code"`
	StudentEnrolmentDay time.Time `gorm:"column:student_enrolment_day;type:date;not null" json:"student_enrolment_day"`

	StudentMentorID *uuid.UUID `gorm:"column:student_mentor_id;type:uuid" json:"student_mentor_id,omitempty"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
