package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	academics "schoolhub_backend/internals/features/school/academics/model"
	dto "schoolhub_backend/internals/features/school/feedback/dto"
	m "schoolhub_backend/internals/features/school/feedback/model"
	helper "schoolhub_backend/internals/helpers"
)

/* ================== ENTITY RESOLVER ================== */

type resolvedEntities struct {
	Student *academics.StudentModel
	Staff   *academics.StaffModel
	Course  *academics.CourseModel
	Class   *academics.ClassModel
	Term    *academics.TermModel
}

// resolveEntities fetches the five referenced entities in parallel, then
// checks them in a fixed priority order so error messages stay deterministic
// regardless of which lookup finished first.
func (s *FeedbackService) resolveEntities(ctx context.Context, studentID uuid.UUID, req dto.SubmitFeedbackRequest) (resolvedEntities, error) {
	var out resolvedEntities

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fetchByID(gctx, s.DB, &out.Student, "student_id", studentID)
	})
	g.Go(func() error {
		return fetchByID(gctx, s.DB, &out.Staff, "staff_id", req.StaffID)
	})
	g.Go(func() error {
		return fetchByID(gctx, s.DB, &out.Course, "course_id", req.CourseID)
	})
	g.Go(func() error {
		return fetchByID(gctx, s.DB, &out.Class, "class_id", req.ClassID)
	})
	g.Go(func() error {
		return fetchByID(gctx, s.DB, &out.Term, "term_id", req.TermID)
	})
	if err := g.Wait(); err != nil {
		return resolvedEntities{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve feedback entities")
	}

	if out.Student == nil {
		return resolvedEntities{}, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Student with ID %s not found", studentID))
	}
	if out.Staff == nil {
		return resolvedEntities{}, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Staff with ID %s not found", req.StaffID))
	}
	if out.Staff.StaffRole != constants.StaffRoleTeacher {
		return resolvedEntities{}, fiber.NewError(fiber.StatusBadRequest, "Staff member is not a teacher")
	}
	if out.Course == nil {
		return resolvedEntities{}, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Course with ID %s not found", req.CourseID))
	}
	if out.Class == nil {
		return resolvedEntities{}, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Class with ID %s not found", req.ClassID))
	}
	if out.Term == nil {
		return resolvedEntities{}, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Term with ID %s not found", req.TermID))
	}

	return out, nil
}

// fetchByID loads one row into *dst; a missing row leaves *dst nil so the
// caller can report the error in priority order.
func fetchByID[T any](ctx context.Context, db *gorm.DB, dst **T, column string, id uuid.UUID) error {
	var row T
	err := db.WithContext(ctx).Where(column+" = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	*dst = &row
	return nil
}

/* ================== ANSWER VALIDATOR ================== */

// validateAnswers checks every answer against the active question set before
// any write happens. It never writes; one bad answer rejects the whole call.
func (s *FeedbackService) validateAnswers(ctx context.Context, answers []dto.FeedbackAnswer) error {
	distinct := make(map[uuid.UUID]struct{}, len(answers))
	ids := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		if _, ok := distinct[a.QuestionID]; !ok {
			distinct[a.QuestionID] = struct{}{}
			ids = append(ids, a.QuestionID)
		}
	}

	var questions []m.FeedbackQuestionModel
	if err := s.DB.WithContext(ctx).
		Where("feedback_question_id IN ? AND feedback_question_is_active = ?", ids, true).
		Find(&questions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch feedback questions")
	}

	// missing and inactive collapse into one message on purpose
	if len(questions) != len(ids) {
		return fiber.NewError(fiber.StatusBadRequest, "Some questions are invalid or inactive")
	}

	type parsedQuestion struct {
		text   string
		values []string
	}
	questionMap := make(map[uuid.UUID]parsedQuestion, len(questions))
	for _, q := range questions {
		opts, err := dto.ParseOptions(q.FeedbackQuestionOptions)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read question options")
		}
		values := make([]string, 0, len(opts))
		for _, o := range opts {
			values = append(values, o.Value)
		}
		questionMap[q.FeedbackQuestionID] = parsedQuestion{text: q.FeedbackQuestionText, values: values}
	}

	for _, answer := range answers {
		q, ok := questionMap[answer.QuestionID]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Question with ID %s not found", answer.QuestionID))
		}
		valid := false
		for _, v := range q.values {
			if v == answer.SelectedOption {
				valid = true
				break
			}
		}
		if !valid {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(
				"Invalid option %q for question %q. Valid options are: %s",
				answer.SelectedOption, q.text, strings.Join(q.values, ", ")))
		}
	}

	return nil
}

/* ================== SUBMISSION WORKFLOW ================== */

func (s *FeedbackService) findSubmission(ctx context.Context, studentID, staffID, courseID, termID uuid.UUID) (*m.FeedbackSubmissionModel, error) {
	var submission m.FeedbackSubmissionModel
	err := s.DB.WithContext(ctx).
		Where(`feedback_submission_student_id = ?
			AND feedback_submission_staff_id = ?
			AND feedback_submission_course_id = ?
			AND feedback_submission_term_id = ?`,
			studentID, staffID, courseID, termID).
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing submission")
	}
	return &submission, nil
}

func (s *FeedbackService) buildResponses(studentID uuid.UUID, req dto.SubmitFeedbackRequest) []m.FeedbackResponseModel {
	responses := make([]m.FeedbackResponseModel, 0, len(req.Answers))
	for _, answer := range req.Answers {
		responses = append(responses, m.FeedbackResponseModel{
			FeedbackResponseStudentID:      studentID,
			FeedbackResponseStaffID:        req.StaffID,
			FeedbackResponseCourseID:       req.CourseID,
			FeedbackResponseClassID:        req.ClassID,
			FeedbackResponseTermID:         req.TermID,
			FeedbackResponseQuestionID:     answer.QuestionID,
			FeedbackResponseSelectedOption: answer.SelectedOption,
		})
	}
	return responses
}

// SubmitFeedback creates the answer rows and the submission receipt for one
// (student, staff, course, term) slot in a single transaction. The pre-check
// catches the common duplicate case; the unique index is the last line of
// defense when two submits race past the pre-check.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, studentID uuid.UUID, req dto.SubmitFeedbackRequest) (dto.SubmitFeedbackResponse, error) {
	if _, err := s.resolveEntities(ctx, studentID, req); err != nil {
		return dto.SubmitFeedbackResponse{}, err
	}

	existing, err := s.findSubmission(ctx, studentID, req.StaffID, req.CourseID, req.TermID)
	if err != nil {
		return dto.SubmitFeedbackResponse{}, err
	}
	if existing != nil {
		return dto.SubmitFeedbackResponse{}, fiber.NewError(fiber.StatusConflict,
			"Feedback has already been submitted for this teacher/course combination")
	}

	if err := s.validateAnswers(ctx, req.Answers); err != nil {
		return dto.SubmitFeedbackResponse{}, err
	}

	submission := m.FeedbackSubmissionModel{
		FeedbackSubmissionStudentID: studentID,
		FeedbackSubmissionStaffID:   req.StaffID,
		FeedbackSubmissionCourseID:  req.CourseID,
		FeedbackSubmissionTermID:    req.TermID,
		FeedbackSubmissionClassID:   req.ClassID,
		FeedbackSubmissionNotes:     req.Notes,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		responses := s.buildResponses(studentID, req)
		if err := tx.Create(&responses).Error; err != nil {
			return err
		}
		return tx.Create(&submission).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return dto.SubmitFeedbackResponse{}, fiber.NewError(fiber.StatusConflict,
				"Feedback has already been submitted for this teacher/course combination")
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return dto.SubmitFeedbackResponse{}, fe
		}
		return dto.SubmitFeedbackResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to save feedback")
	}

	return dto.SubmitFeedbackResponse{
		Message:      "Feedback submitted successfully",
		SubmissionID: submission.FeedbackSubmissionID,
	}, nil
}

// UpdateFeedback replaces the full answer set for an existing submission:
// delete + reinsert inside one transaction, then bump notes and submitted_at.
// Any failure rolls the whole thing back, so the prior answers stay intact.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, studentID uuid.UUID, req dto.SubmitFeedbackRequest) (dto.SubmitFeedbackResponse, error) {
	if _, err := s.resolveEntities(ctx, studentID, req); err != nil {
		return dto.SubmitFeedbackResponse{}, err
	}

	existing, err := s.findSubmission(ctx, studentID, req.StaffID, req.CourseID, req.TermID)
	if err != nil {
		return dto.SubmitFeedbackResponse{}, err
	}
	if existing == nil {
		return dto.SubmitFeedbackResponse{}, fiber.NewError(fiber.StatusNotFound,
			"Feedback submission not found. Please submit feedback first.")
	}

	if err := s.validateAnswers(ctx, req.Answers); err != nil {
		return dto.SubmitFeedbackResponse{}, err
	}

	now := time.Now()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(`feedback_response_student_id = ?
				AND feedback_response_staff_id = ?
				AND feedback_response_course_id = ?
				AND feedback_response_class_id = ?
				AND feedback_response_term_id = ?`,
				studentID, req.StaffID, req.CourseID, req.ClassID, req.TermID).
			Delete(&m.FeedbackResponseModel{}).Error; err != nil {
			return err
		}

		responses := s.buildResponses(studentID, req)
		if err := tx.Create(&responses).Error; err != nil {
			return err
		}

		return tx.Model(&m.FeedbackSubmissionModel{}).
			Where("feedback_submission_id = ?", existing.FeedbackSubmissionID).
			Updates(map[string]interface{}{
				"feedback_submission_notes":        req.Notes,
				"feedback_submission_submitted_at": now,
			}).Error
	})
	if err != nil {
		return dto.SubmitFeedbackResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to update feedback")
	}

	return dto.SubmitFeedbackResponse{
		Message:      "Feedback updated successfully",
		SubmissionID: existing.FeedbackSubmissionID,
	}, nil
}
