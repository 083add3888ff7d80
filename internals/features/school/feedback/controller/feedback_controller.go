package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/feedback/dto"
	service "schoolhub_backend/internals/features/school/feedback/service"
	helper "schoolhub_backend/internals/helpers"
)

type FeedbackController struct {
	Service *service.FeedbackService
}

func New(db *gorm.DB) *FeedbackController {
	return &FeedbackController{Service: service.New(db)}
}

/* ================== QUESTION MANAGEMENT (staff/admin) ================== */

// POST /feedback/questions
func (h *FeedbackController) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateFeedbackQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()

	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	question, err := h.Service.CreateQuestion(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Feedback question created", dto.FromQuestionModel(question))
}

// GET /feedback/questions?includeInactive=
func (h *FeedbackController) ListQuestions(c *fiber.Ctx) error {
	includeInactive := strings.EqualFold(c.Query("includeInactive"), "true")

	questions, err := h.Service.ListQuestions(c.UserContext(), includeInactive)
	if err != nil {
		return err
	}

	out := make([]dto.FeedbackQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.FromQuestionModel(q))
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /feedback/questions/:id
func (h *FeedbackController) GetQuestion(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	question, err := h.Service.GetQuestion(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromQuestionModel(question))
}

// PATCH /feedback/questions/:id
func (h *FeedbackController) UpdateQuestion(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateFeedbackQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	question, err := h.Service.UpdateQuestion(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Feedback question updated", dto.FromQuestionModel(question))
}

// DELETE /feedback/questions/:id
func (h *FeedbackController) DeleteQuestion(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Service.DeleteQuestion(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Feedback question deleted")
}

/* ================== STUDENT FEEDBACK ================== */

// GET /feedback/student/forms?termId=
func (h *FeedbackController) GetStudentForms(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	termID, err := parseOptionalUUIDQuery(c, "termId")
	if err != nil {
		return err
	}

	out, err := h.Service.GetStudentFeedbackForms(c.UserContext(), studentID, termID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", out)
}

// POST /feedback/submit
func (h *FeedbackController) SubmitFeedback(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Service.SubmitFeedback(c.UserContext(), studentID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, out.Message, out)
}

// PATCH /feedback/submission
func (h *FeedbackController) UpdateFeedback(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Service.UpdateFeedback(c.UserContext(), studentID, req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, out.Message, out)
}

// GET /feedback/submission?staffId=&courseId=&termId=
func (h *FeedbackController) GetSubmittedFeedback(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	staffID, err := parseRequiredUUIDQuery(c, "staffId")
	if err != nil {
		return err
	}
	courseID, err := parseRequiredUUIDQuery(c, "courseId")
	if err != nil {
		return err
	}
	termID, err := parseRequiredUUIDQuery(c, "termId")
	if err != nil {
		return err
	}

	out, err := h.Service.GetSubmittedFeedback(c.UserContext(), studentID, staffID, courseID, termID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", out)
}

/* ================== STAFF VIEW ================== */

// GET /feedback/responses?courseId=&termId=
func (h *FeedbackController) GetFeedbackResponses(c *fiber.Ctx) error {
	staffID, err := helper.GetStaffIDFromToken(c)
	if err != nil {
		return err
	}

	courseID, err := parseOptionalUUIDQuery(c, "courseId")
	if err != nil {
		return err
	}
	termID, err := parseOptionalUUIDQuery(c, "termId")
	if err != nil {
		return err
	}

	out, err := h.Service.GetFeedbackResponses(c.UserContext(), staffID, courseID, termID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", out)
}

/* ================== PARAM HELPERS ================== */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

func parseOptionalUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return &id, nil
}

func parseRequiredUUIDQuery(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
