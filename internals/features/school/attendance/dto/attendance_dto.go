package dto

import (
	"github.com/google/uuid"
)

type CreateAttendanceRequest struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	SessionID uuid.UUID `json:"sessionId" validate:"required"`
	Status    string    `json:"status" validate:"omitempty,oneof=PRESENT ABSENT LATE PENDING"`
	Note      *string   `json:"note"`
}

type UpdateAttendanceRequest struct {
	StudentID *uuid.UUID `json:"studentId"`
	SessionID *uuid.UUID `json:"sessionId"`
	Status    *string    `json:"status" validate:"omitempty,oneof=PRESENT ABSENT LATE PENDING"`
	Note      *string    `json:"note"`
}

/* ================== BULK ================== */

type BulkAttendanceItem struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=PRESENT ABSENT LATE PENDING"`
	Note      *string   `json:"note"`
}

type CreateBulkAttendanceRequest struct {
	SessionID uuid.UUID            `json:"sessionId" validate:"required"`
	Students  []BulkAttendanceItem `json:"students" validate:"required,min=1,dive"`
}

type UpdateBulkAttendanceItem struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	Status    *string   `json:"status" validate:"omitempty,oneof=PRESENT ABSENT LATE PENDING"`
	Note      *string   `json:"note"`
}

type UpdateBulkAttendanceRequest struct {
	SessionID uuid.UUID                  `json:"sessionId" validate:"required"`
	Students  []UpdateBulkAttendanceItem `json:"students" validate:"required,min=1,dive"`
}

// BulkError is one skipped item in a bulk call; the rest of the batch still
// goes through.
type BulkError struct {
	StudentID uuid.UUID `json:"studentId"`
	Error     string    `json:"error"`
}

/* ================== LIST FILTERS ================== */

type ListAttendanceFilter struct {
	StudentID *uuid.UUID
	SessionID *uuid.UUID
	ClassID   *uuid.UUID
	CourseID  *uuid.UUID
	Status    string
	Sort      string
	Order     string
	Offset    int
	Limit     int
}
