package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/attendance/dto"
	service "schoolhub_backend/internals/features/school/attendance/service"
	helper "schoolhub_backend/internals/helpers"
)

type AttendanceController struct {
	Service *service.AttendanceService
}

func New(db *gorm.DB) *AttendanceController {
	return &AttendanceController{Service: service.New(db)}
}

// POST /attendance
func (h *AttendanceController) Create(c *fiber.Ctx) error {
	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	attendance, err := h.Service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Attendance record created", attendance)
}

// GET /attendance?studentId=&sessionId=&classId=&courseId=&status=&sort=&order=&page=&per_page=
func (h *AttendanceController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	filter := dto.ListAttendanceFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Sort:   strings.TrimSpace(c.Query("sort")),
		Order:  strings.TrimSpace(c.Query("order")),
		Offset: paging.Offset,
		Limit:  paging.Limit,
	}

	var err error
	if filter.StudentID, err = optionalUUIDQuery(c, "studentId"); err != nil {
		return err
	}
	if filter.SessionID, err = optionalUUIDQuery(c, "sessionId"); err != nil {
		return err
	}
	if filter.ClassID, err = optionalUUIDQuery(c, "classId"); err != nil {
		return err
	}
	if filter.CourseID, err = optionalUUIDQuery(c, "courseId"); err != nil {
		return err
	}

	records, total, err := h.Service.FindAll(c.UserContext(), filter)
	if err != nil {
		return err
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"records":    records,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /attendance/:id
func (h *AttendanceController) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	attendance, err := h.Service.FindOne(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", attendance)
}

// PATCH /attendance/:id
func (h *AttendanceController) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	attendance, err := h.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Attendance record updated", attendance)
}

// DELETE /attendance/:id
func (h *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Remove(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Attendance record deleted")
}

// DELETE /attendance/session/:sessionId
func (h *AttendanceController) DeleteBySession(c *fiber.Ctx) error {
	sessionID, err := uuidParam(c, "sessionId")
	if err != nil {
		return err
	}
	deleted, err := h.Service.RemoveBySession(c.UserContext(), sessionID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Attendance records deleted", fiber.Map{"deleted": deleted})
}

// POST /attendance/bulk
func (h *AttendanceController) CreateBulk(c *fiber.Ctx) error {
	var req dto.CreateBulkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := h.Service.CreateBulk(c.UserContext(), req)
	if err != nil {
		return err
	}
	// an all-fail batch is a client error, with the per-item reasons attached
	if len(result.Created) == 0 && len(result.Errors) > 0 {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest,
			"Failed to create any attendance records", result.Errors)
	}
	return helper.JsonCreated(c, "Attendance records created", result)
}

// PATCH /attendance/bulk
func (h *AttendanceController) UpdateBulk(c *fiber.Ctx) error {
	var req dto.UpdateBulkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := h.Service.UpdateBulk(c.UserContext(), req)
	if err != nil {
		return err
	}
	if len(result.Updated) == 0 && len(result.Errors) > 0 {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest,
			"Failed to update any attendance records", result.Errors)
	}
	return helper.JsonOK(c, "Attendance records updated", result)
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

func optionalUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
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
