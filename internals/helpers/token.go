package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Claim accessors over locals set by the auth middleware.

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "user_id", "User ID not found in token")
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Role not found in token")
	}
	return role, nil
}

// GetStudentIDFromToken resolves the student linked to the caller. Student-only
// endpoints fail with 400 when the account has no student record.
func GetStudentIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "student_id", "Student ID not found in user context")
}

func GetStaffIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "staff_id", "Staff ID not found in user context")
}

func localsUUID(c *fiber.Ctx, key, msg string) (uuid.UUID, error) {
	raw, ok := c.Locals(key).(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return id, nil
}
