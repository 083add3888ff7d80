package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackResponseModel is one answer row. Rows are created in bulk on submit
// and deleted+recreated in bulk on update, never patched in place.
type FeedbackResponseModel struct {
	FeedbackResponseID uuid.UUID `gorm:"column:feedback_response_id;type:uuid;primaryKey" json:"feedback_response_id"`

	FeedbackResponseStudentID uuid.UUID `gorm:"column:feedback_response_student_id;type:uuid;not null;index" json:"feedback_response_student_id"`
	FeedbackResponseStaffID   uuid.UUID `gorm:"column:feedback_response_staff_id;type:uuid;not null;index" json:"feedback_response_staff_id"`
	FeedbackResponseCourseID  uuid.UUID `gorm:"column:feedback_response_course_id;type:uuid;not null;index" json:"feedback_response_course_id"`
	FeedbackResponseClassID   uuid.UUID `gorm:"column:feedback_response_class_id;type:uuid;not null" json:"feedback_response_class_id"`
	FeedbackResponseTermID    uuid.UUID `gorm:"column:feedback_response_term_id;type:uuid;not null;index" json:"feedback_response_term_id"`

	FeedbackResponseQuestionID uuid.UUID `gorm:"column:feedback_response_question_id;type:uuid;not null" json:"feedback_response_question_id"`

	// must equal one of the question's option values at write time; enforced in
	// the service, not by a DB constraint
	FeedbackResponseSelectedOption string `gorm:"column:feedback_response_selected_option;type:varchar(255);not null" json:"feedback_response_selected_option"`

	FeedbackResponseCreatedAt time.Time `gorm:"column:feedback_response_created_at;not null;autoCreateTime" json:"feedback_response_created_at"`
}

func (FeedbackResponseModel) TableName() string { return "feedback_responses" }

func (m *FeedbackResponseModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeedbackResponseID == uuid.Nil {
		m.FeedbackResponseID = uuid.New()
	}
	return nil
}
