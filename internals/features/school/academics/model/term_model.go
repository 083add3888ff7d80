package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TermModel struct {
	TermID   uuid.UUID `gorm:"column:term_id;type:uuid;primaryKey" json:"term_id"`
	TermName string    `gorm:"column:term_name;type:varchar(100);not null" json:"term_name"`

	TermStartDate time.Time `gorm:"column:term_start_date;type:date;not null" json:"term_start_date"`
	TermEndDate   time.Time `gorm:"column:term_end_date;type:date;not null" json:"term_end_date"`

	TermCreatedAt time.Time `gorm:"column:term_created_at;not null;autoCreateTime" json:"term_created_at"`
	TermUpdatedAt time.Time `gorm:"column:term_updated_at;not null;autoUpdateTime" json:"term_updated_at"`
}

func (TermModel) TableName() string { return "terms" }

func (m *TermModel) BeforeCreate(tx *gorm.DB) error {
	if m.TermID == uuid.Nil {
		m.TermID = uuid.New()
	}
	return nil
}
