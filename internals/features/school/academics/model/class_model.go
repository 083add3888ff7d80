package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID   uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey" json:"class_id"`
	ClassName string    `gorm:"column:class_name;type:varchar(100);not null" json:"class_name"`

	ClassCreatedAt time.Time `gorm:"column:class_created_at;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;not null;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

// ClassCourseModel links a class to the courses taught in it.
type ClassCourseModel struct {
	ClassCourseID       uuid.UUID `gorm:"column:class_course_id;type:uuid;primaryKey" json:"class_course_id"`
	ClassCourseClassID  uuid.UUID `gorm:"column:class_course_class_id;type:uuid;not null;uniqueIndex:uq_class_courses_pair" json:"class_course_class_id"`
	ClassCourseCourseID uuid.UUID `gorm:"column:class_course_course_id;type:uuid;not null;uniqueIndex:uq_class_courses_pair" json:"class_course_course_id"`

	ClassCourseCreatedAt time.Time `gorm:"column:class_course_created_at;not null;autoCreateTime" json:"class_course_created_at"`
}

func (ClassCourseModel) TableName() string { return "class_courses" }

func (m *ClassCourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassCourseID == uuid.Nil {
		m.ClassCourseID = uuid.New()
	}
	return nil
}
