package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance statuses
const (
	AttendanceStatusPresent = "PRESENT"
	AttendanceStatusAbsent  = "ABSENT"
	AttendanceStatusLate    = "LATE"
	AttendanceStatusPending = "PENDING"
)

type AttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`

	AttendanceStudentID uuid.UUID `gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendances_student_session" json:"attendance_student_id"`
	AttendanceSessionID uuid.UUID `gorm:"column:attendance_session_id;type:uuid;not null;uniqueIndex:uq_attendances_student_session" json:"attendance_session_id"`

	AttendanceStatus string  `gorm:"column:attendance_status;type:varchar(10);not null;default:'PENDING'" json:"attendance_status"`
	AttendanceNote   *string `gorm:"column:attendance_note;type:text" json:"attendance_note,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;not null;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;not null;autoUpdateTime" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
