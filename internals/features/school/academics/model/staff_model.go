package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffModel struct {
	StaffID     uuid.UUID `gorm:"column:staff_id;type:uuid;primaryKey" json:"staff_id"`
	StaffUserID uuid.UUID `gorm:"column:staff_user_id;type:uuid;not null;index" json:"staff_user_id"`

	StaffCode string `gorm:"column:staff_code;type:varchar(20);not null;uniqueIndex:uq_staff_code" json:"staff_code"`

	// TEACHER | MENTOR | OFFICE
	StaffRole string `gorm:"column:staff_role;type:varchar(20);not null" json:"staff_role"`

	StaffHireDate time.Time  `gorm:"column:staff_hire_date;not null" json:"staff_hire_date"`
	StaffEndDate  *time.Time `gorm:"column:staff_end_date" json:"staff_end_date,omitempty"`
	StaffNotes    *string    `gorm:"column:staff_notes;type:text" json:"staff_notes,omitempty"`

	StaffCreatedAt time.Time `gorm:"column:staff_created_at;not null;autoCreateTime" json:"staff_created_at"`
	StaffUpdatedAt time.Time `gorm:"column:staff_updated_at;not null;autoUpdateTime" json:"staff_updated_at"`
}

func (StaffModel) TableName() string { return "staff" }

func (m *StaffModel) BeforeCreate(tx *gorm.DB) error {
	if m.StaffID == uuid.Nil {
		m.StaffID = uuid.New()
	}
	return nil
}
