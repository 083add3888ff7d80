package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        MeResponse `json:"user"`
}

type MeResponse struct {
	UserID    uuid.UUID  `json:"userId"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	StudentID *uuid.UUID `json:"studentId,omitempty"`
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	StaffRole string     `json:"staffRole,omitempty"`
}
