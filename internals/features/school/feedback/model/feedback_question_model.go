package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types
const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeRating         = "RATING"
	QuestionTypeYesNo          = "YES_NO"
	QuestionTypeText           = "TEXT"
)

// QuestionOption is one selectable option. Stored inside the question's JSONB
// options column, never as its own table; `value` is what responses reference.
type QuestionOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	LabelAlt string `json:"labelAlt,omitempty"`
}

type FeedbackQuestionModel struct {
	FeedbackQuestionID uuid.UUID `gorm:"column:feedback_question_id;type:uuid;primaryKey" json:"feedback_question_id"`

	FeedbackQuestionText    string  `gorm:"column:feedback_question_text;type:varchar(500);not null" json:"feedback_question_text"`
	// secondary-language text
	FeedbackQuestionTextAlt *string `gorm:"column:feedback_question_text_alt;type:varchar(500)" json:"feedback_question_text_alt,omitempty"`

	FeedbackQuestionType string `gorm:"column:feedback_question_type;type:varchar(50);not null;default:'MULTIPLE_CHOICE'" json:"feedback_question_type"`

	// []QuestionOption; validated on every write, re-parsed on read
	FeedbackQuestionOptions datatypes.JSON `gorm:"column:feedback_question_options;type:jsonb;not null;default:'[]'" json:"feedback_question_options"`

	FeedbackQuestionOrder    int  `gorm:"column:feedback_question_order;not null;default:0" json:"feedback_question_order"`
	FeedbackQuestionIsActive bool `gorm:"column:feedback_question_is_active;not null;default:true" json:"feedback_question_is_active"`

	FeedbackQuestionCreatedAt time.Time `gorm:"column:feedback_question_created_at;not null;autoCreateTime" json:"feedback_question_created_at"`
	FeedbackQuestionUpdatedAt time.Time `gorm:"column:feedback_question_updated_at;not null;autoUpdateTime" json:"feedback_question_updated_at"`
}

func (FeedbackQuestionModel) TableName() string { return "feedback_questions" }

func (m *FeedbackQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeedbackQuestionID == uuid.Nil {
		m.FeedbackQuestionID = uuid.New()
	}
	return nil
}
