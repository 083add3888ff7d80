package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "schoolhub_backend/internals/features/school/feedback/model"
)

/* =========================================================
   PATCH FIELD — tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

/* =========================================================
   QUESTION OPTION
   ========================================================= */

type QuestionOptionDTO struct {
	Value    string `json:"value" validate:"required"`
	Label    string `json:"label" validate:"required"`
	LabelAlt string `json:"labelAlt,omitempty"`
}

func (o QuestionOptionDTO) ToModel() m.QuestionOption {
	return m.QuestionOption{
		Value:    strings.TrimSpace(o.Value),
		Label:    strings.TrimSpace(o.Label),
		LabelAlt: strings.TrimSpace(o.LabelAlt),
	}
}

func OptionsToJSON(options []QuestionOptionDTO) (datatypes.JSON, error) {
	list := make([]m.QuestionOption, 0, len(options))
	for _, o := range options {
		list = append(list, o.ToModel())
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// ParseOptions re-parses the stored JSONB column. Stored data is never trusted
// as pre-validated; callers must handle the error.
func ParseOptions(raw datatypes.JSON) ([]m.QuestionOption, error) {
	if len(raw) == 0 {
		return []m.QuestionOption{}, nil
	}
	var list []m.QuestionOption
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

/* =========================================================
   QUESTION CREATE / UPDATE
   ========================================================= */

type CreateFeedbackQuestionRequest struct {
	QuestionText    string  `json:"questionText" validate:"required,min=1,max=500"`
	QuestionTextAlt *string `json:"questionTextAlt" validate:"omitempty,max=500"`

	QuestionType string `json:"questionType" validate:"omitempty,oneof=MULTIPLE_CHOICE RATING YES_NO TEXT"`

	Options []QuestionOptionDTO `json:"options" validate:"required,min=1,dive"`

	QuestionOrder *int  `json:"questionOrder"`
	IsActive      *bool `json:"isActive"`
}

func (r *CreateFeedbackQuestionRequest) Normalize() {
	r.QuestionText = strings.TrimSpace(r.QuestionText)
	if r.QuestionTextAlt != nil {
		v := strings.TrimSpace(*r.QuestionTextAlt)
		if v == "" {
			r.QuestionTextAlt = nil
		} else {
			r.QuestionTextAlt = &v
		}
	}
	r.QuestionType = strings.TrimSpace(strings.ToUpper(r.QuestionType))
}

func (r CreateFeedbackQuestionRequest) ToModel() (m.FeedbackQuestionModel, error) {
	opts, err := OptionsToJSON(r.Options)
	if err != nil {
		return m.FeedbackQuestionModel{}, err
	}

	mm := m.FeedbackQuestionModel{
		FeedbackQuestionText:     r.QuestionText,
		FeedbackQuestionTextAlt:  r.QuestionTextAlt,
		FeedbackQuestionType:     m.QuestionTypeMultipleChoice,
		FeedbackQuestionOptions:  opts,
		FeedbackQuestionIsActive: true,
	}
	if r.QuestionType != "" {
		mm.FeedbackQuestionType = r.QuestionType
	}
	if r.QuestionOrder != nil {
		mm.FeedbackQuestionOrder = *r.QuestionOrder
	}
	if r.IsActive != nil {
		mm.FeedbackQuestionIsActive = *r.IsActive
	}
	return mm, nil
}

type UpdateFeedbackQuestionRequest struct {
	QuestionText    PatchField[string]              `json:"questionText"`
	QuestionTextAlt PatchField[string]              `json:"questionTextAlt"`
	QuestionType    PatchField[string]              `json:"questionType"`
	Options         PatchField[[]QuestionOptionDTO] `json:"options"`
	QuestionOrder   PatchField[int]                 `json:"questionOrder"`
	IsActive        PatchField[bool]                `json:"isActive"`
}

/* =========================================================
   QUESTION RESPONSE SHAPE
   ========================================================= */

type FeedbackQuestionResponse struct {
	FeedbackQuestionID uuid.UUID          `json:"id"`
	QuestionText       string             `json:"questionText"`
	QuestionTextAlt    *string            `json:"questionTextAlt,omitempty"`
	QuestionType       string             `json:"questionType"`
	Options            []m.QuestionOption `json:"options"`
	QuestionOrder      int                `json:"questionOrder"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func FromQuestionModel(q m.FeedbackQuestionModel) FeedbackQuestionResponse {
	opts, err := ParseOptions(q.FeedbackQuestionOptions)
	if err != nil {
		opts = []m.QuestionOption{}
	}
	return FeedbackQuestionResponse{
		FeedbackQuestionID: q.FeedbackQuestionID,
		QuestionText:       q.FeedbackQuestionText,
		QuestionTextAlt:    q.FeedbackQuestionTextAlt,
		QuestionType:       q.FeedbackQuestionType,
		Options:            opts,
		QuestionOrder:      q.FeedbackQuestionOrder,
		IsActive:           q.FeedbackQuestionIsActive,
		CreatedAt:          q.FeedbackQuestionCreatedAt,
		UpdatedAt:          q.FeedbackQuestionUpdatedAt,
	}
}

/* =========================================================
   SUBMIT / UPDATE FEEDBACK
   ========================================================= */

type FeedbackAnswer struct {
	QuestionID     uuid.UUID `json:"questionId" validate:"required"`
	SelectedOption string    `json:"selectedOption" validate:"required"`
}

type SubmitFeedbackRequest struct {
	StaffID  uuid.UUID `json:"staffId" validate:"required"`
	CourseID uuid.UUID `json:"courseId" validate:"required"`
	ClassID  uuid.UUID `json:"classId" validate:"required"`
	TermID   uuid.UUID `json:"termId" validate:"required"`

	Answers []FeedbackAnswer `json:"answers" validate:"required,min=1,dive"`

	Notes *string `json:"notes"`
}

type SubmitFeedbackResponse struct {
	Message      string    `json:"message"`
	SubmissionID uuid.UUID `json:"submissionId"`
}

/* =========================================================
   FORM BUILDER OUTPUT
   ========================================================= */

type FeedbackForm struct {
	StaffID     uuid.UUID `json:"staffId"`
	TeacherName string    `json:"teacherName"`
	StaffCode   string    `json:"staffCode"`
	CourseID    uuid.UUID `json:"courseId"`
	CourseName  string    `json:"courseName"`
	ClassID     uuid.UUID `json:"classId"`
	ClassCode   string    `json:"classCode"`
	TermID      uuid.UUID `json:"termId"`
	IsSubmitted bool      `json:"isSubmitted"`
}

type StudentFeedbackFormsResponse struct {
	Forms     []FeedbackForm             `json:"forms"`
	Questions []FeedbackQuestionResponse `json:"questions"`
}

/* =========================================================
   SUBMITTED FEEDBACK READBACK
   ========================================================= */

type SubmittedFeedbackResponse struct {
	StaffID     uuid.UUID        `json:"staffId"`
	CourseID    uuid.UUID        `json:"courseId"`
	ClassID     uuid.UUID        `json:"classId"`
	TermID      uuid.UUID        `json:"termId"`
	Notes       string           `json:"notes"`
	Answers     []FeedbackAnswer `json:"answers"`
	SubmittedAt time.Time        `json:"submittedAt"`
}
