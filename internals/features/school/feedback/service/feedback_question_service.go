package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/feedback/dto"
	m "schoolhub_backend/internals/features/school/feedback/model"
)

type FeedbackService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *FeedbackService { return &FeedbackService{DB: db} }

/* ================== QUESTION CATALOG ================== */

// validateQuestionOptions enforces the option invariants on every write path:
// non-empty set, non-blank value/label, values unique within the question.
func validateQuestionOptions(options []dto.QuestionOptionDTO) error {
	if len(options) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Question options must not be empty")
	}

	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		value := strings.TrimSpace(opt.Value)
		label := strings.TrimSpace(opt.Label)
		if value == "" || label == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Each option must have both value and label fields")
		}
		if _, dup := seen[value]; dup {
			return fiber.NewError(fiber.StatusBadRequest, "Option values must be unique within a question")
		}
		seen[value] = struct{}{}
	}
	return nil
}

func (s *FeedbackService) CreateQuestion(ctx context.Context, req dto.CreateFeedbackQuestionRequest) (m.FeedbackQuestionModel, error) {
	if err := validateQuestionOptions(req.Options); err != nil {
		return m.FeedbackQuestionModel{}, err
	}

	question, err := req.ToModel()
	if err != nil {
		return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusBadRequest, "Invalid question options payload")
	}

	if err := s.DB.WithContext(ctx).Create(&question).Error; err != nil {
		return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to create feedback question")
	}
	return question, nil
}

func (s *FeedbackService) ListQuestions(ctx context.Context, includeInactive bool) ([]m.FeedbackQuestionModel, error) {
	q := s.DB.WithContext(ctx).Model(&m.FeedbackQuestionModel{})
	if !includeInactive {
		q = q.Where("feedback_question_is_active = ?", true)
	}

	var questions []m.FeedbackQuestionModel
	if err := q.Order("feedback_question_order ASC").Find(&questions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch feedback questions")
	}
	return questions, nil
}

func (s *FeedbackService) GetQuestion(ctx context.Context, id uuid.UUID) (m.FeedbackQuestionModel, error) {
	var question m.FeedbackQuestionModel
	err := s.DB.WithContext(ctx).
		Where("feedback_question_id = ?", id).
		First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Feedback question with ID %s not found", id))
	}
	if err != nil {
		return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch feedback question")
	}
	return question, nil
}

// UpdateQuestion merges the patch onto the stored row. When options are part
// of the patch the full option validation runs again first.
func (s *FeedbackService) UpdateQuestion(ctx context.Context, id uuid.UUID, req dto.UpdateFeedbackQuestionRequest) (m.FeedbackQuestionModel, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return m.FeedbackQuestionModel{}, err
	}

	if v, present := req.QuestionText.Get(); present {
		if v == nil || strings.TrimSpace(*v) == "" {
			return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusBadRequest, "Question text must not be empty")
		}
		question.FeedbackQuestionText = strings.TrimSpace(*v)
	}
	if v, present := req.QuestionTextAlt.Get(); present {
		question.FeedbackQuestionTextAlt = v
	}
	if v, present := req.QuestionType.Get(); present {
		if v == nil {
			return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusBadRequest, "Question type must not be null")
		}
		t := strings.ToUpper(strings.TrimSpace(*v))
		switch t {
		case m.QuestionTypeMultipleChoice, m.QuestionTypeRating, m.QuestionTypeYesNo, m.QuestionTypeText:
			question.FeedbackQuestionType = t
		default:
			return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusBadRequest, "Unknown question type")
		}
	}
	if v, present := req.Options.Get(); present {
		if v == nil {
			return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusBadRequest, "Question options must not be null")
		}
		if err := validateQuestionOptions(*v); err != nil {
			return m.FeedbackQuestionModel{}, err
		}
		raw, err := dto.OptionsToJSON(*v)
		if err != nil {
			return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusBadRequest, "Invalid question options payload")
		}
		question.FeedbackQuestionOptions = raw
	}
	if v, present := req.QuestionOrder.Get(); present && v != nil {
		question.FeedbackQuestionOrder = *v
	}
	if v, present := req.IsActive.Get(); present && v != nil {
		question.FeedbackQuestionIsActive = *v
	}

	if err := s.DB.WithContext(ctx).Save(&question).Error; err != nil {
		return m.FeedbackQuestionModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to update feedback question")
	}
	return question, nil
}

// DeleteQuestion hard-deletes the row. Existing response rows referencing the
// question are left in place; deactivating via PATCH is the safer path.
func (s *FeedbackService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&question).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete feedback question")
	}
	return nil
}
