package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackSubmissionModel is the receipt that one (student, staff, course,
// term) slot has been answered. The unique index deliberately leaves class_id
// out: a student reassigned mid-term keeps their existing submission.
type FeedbackSubmissionModel struct {
	FeedbackSubmissionID uuid.UUID `gorm:"column:feedback_submission_id;type:uuid;primaryKey" json:"feedback_submission_id"`

	FeedbackSubmissionStudentID uuid.UUID `gorm:"column:feedback_submission_student_id;type:uuid;not null;uniqueIndex:uq_feedback_submissions_tuple" json:"feedback_submission_student_id"`
	FeedbackSubmissionStaffID   uuid.UUID `gorm:"column:feedback_submission_staff_id;type:uuid;not null;uniqueIndex:uq_feedback_submissions_tuple" json:"feedback_submission_staff_id"`
	FeedbackSubmissionCourseID  uuid.UUID `gorm:"column:feedback_submission_course_id;type:uuid;not null;uniqueIndex:uq_feedback_submissions_tuple" json:"feedback_submission_course_id"`
	FeedbackSubmissionTermID    uuid.UUID `gorm:"column:feedback_submission_term_id;type:uuid;not null;uniqueIndex:uq_feedback_submissions_tuple" json:"feedback_submission_term_id"`

	FeedbackSubmissionClassID uuid.UUID `gorm:"column:feedback_submission_class_id;type:uuid;not null" json:"feedback_submission_class_id"`

	FeedbackSubmissionNotes *string `gorm:"column:feedback_submission_notes;type:text" json:"feedback_submission_notes,omitempty"`

	FeedbackSubmissionSubmittedAt time.Time `gorm:"column:feedback_submission_submitted_at;not null;autoCreateTime" json:"feedback_submission_submitted_at"`
}

func (FeedbackSubmissionModel) TableName() string { return "feedback_submissions" }

func (m *FeedbackSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeedbackSubmissionID == uuid.Nil {
		m.FeedbackSubmissionID = uuid.New()
	}
	return nil
}
