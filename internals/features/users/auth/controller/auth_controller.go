package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"schoolhub_backend/internals/configs"
	academics "schoolhub_backend/internals/features/school/academics/model"
	dto "schoolhub_backend/internals/features/users/auth/dto"
	usermodel "schoolhub_backend/internals/features/users/user/model"
	helper "schoolhub_backend/internals/helpers"
)

const tokenLifetime = 12 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *AuthController { return &AuthController{DB: db} }

// POST /auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user usermodel.UserModel
	err := h.DB.WithContext(c.UserContext()).
		Where("user_email = ?", req.Email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account has been deactivated")
	}
	if !user.CheckPassword(req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	me, err := h.buildProfile(c, user)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(tokenLifetime)
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"user_name": user.UserFullName,
		"role":      user.UserRole,
		"iat":       time.Now().Unix(),
		"exp":       expiresAt.Unix(),
	}
	if me.StudentID != nil {
		claims["student_id"] = me.StudentID.String()
	}
	if me.StaffID != nil {
		claims["staff_id"] = me.StaffID.String()
		claims["staff_role"] = me.StaffRole
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        me,
	})
}

// GET /auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user usermodel.UserModel
	dbErr := h.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		First(&user).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if dbErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	me, err := h.buildProfile(c, user)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", me)
}

// buildProfile resolves the student/staff records linked to the account.
func (h *AuthController) buildProfile(c *fiber.Ctx, user usermodel.UserModel) (dto.MeResponse, error) {
	me := dto.MeResponse{
		UserID:   user.UserID,
		FullName: user.UserFullName,
		Email:    user.UserEmail,
		Role:     user.UserRole,
	}

	var student academics.StudentModel
	err := h.DB.WithContext(c.UserContext()).
		Where("student_user_id = ?", user.UserID).
		First(&student).Error
	if err == nil {
		id := student.StudentID
		me.StudentID = &id
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return me, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student profile")
	}

	var staff academics.StaffModel
	err = h.DB.WithContext(c.UserContext()).
		Where("staff_user_id = ?", user.UserID).
		First(&staff).Error
	if err == nil {
		id := staff.StaffID
		me.StaffID = &id
		me.StaffRole = staff.StaffRole
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return me, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch staff profile")
	}

	return me, nil
}
