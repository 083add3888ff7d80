package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academics "schoolhub_backend/internals/features/school/academics/model"
	dto "schoolhub_backend/internals/features/school/attendance/dto"
	m "schoolhub_backend/internals/features/school/attendance/model"
)

type AttendanceService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *AttendanceService { return &AttendanceService{DB: db} }

func (s *AttendanceService) getSession(ctx context.Context, id uuid.UUID) (academics.ClassSessionModel, error) {
	var session academics.ClassSessionModel
	err := s.DB.WithContext(ctx).Where("class_session_id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session, fiber.NewError(fiber.StatusNotFound, "Class session not found")
	}
	if err != nil {
		return session, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class session")
	}
	return session, nil
}

/* ================== SINGLE RECORD ================== */

func (s *AttendanceService) Create(ctx context.Context, req dto.CreateAttendanceRequest) (m.AttendanceModel, error) {
	var student academics.StudentModel
	err := s.DB.WithContext(ctx).Where("student_id = ?", req.StudentID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m.AttendanceModel{}, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return m.AttendanceModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if _, err := s.getSession(ctx, req.SessionID); err != nil {
		return m.AttendanceModel{}, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&m.AttendanceModel{}).
		Where("attendance_student_id = ? AND attendance_session_id = ?", req.StudentID, req.SessionID).
		Count(&count).Error; err != nil {
		return m.AttendanceModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to check duplicate attendance")
	}
	if count > 0 {
		return m.AttendanceModel{}, fiber.NewError(fiber.StatusBadRequest,
			"Attendance record already exists for this student in this session")
	}

	attendance := m.AttendanceModel{
		AttendanceStudentID: req.StudentID,
		AttendanceSessionID: req.SessionID,
		AttendanceStatus:    m.AttendanceStatusPending,
		AttendanceNote:      req.Note,
	}
	if req.Status != "" {
		attendance.AttendanceStatus = req.Status
	}

	if err := s.DB.WithContext(ctx).Create(&attendance).Error; err != nil {
		return m.AttendanceModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to create attendance record")
	}
	return attendance, nil
}

func (s *AttendanceService) FindAll(ctx context.Context, filter dto.ListAttendanceFilter) ([]m.AttendanceModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&m.AttendanceModel{})

	needsSessionJoin := filter.ClassID != nil || filter.CourseID != nil || filter.Sort == "dateOn"
	if needsSessionJoin {
		q = q.Joins("JOIN class_sessions ON class_sessions.class_session_id = attendances.attendance_session_id")
	}

	if filter.StudentID != nil {
		q = q.Where("attendance_student_id = ?", *filter.StudentID)
	}
	if filter.SessionID != nil {
		q = q.Where("attendance_session_id = ?", *filter.SessionID)
	}
	if filter.Status != "" {
		q = q.Where("attendance_status = ?", strings.ToUpper(filter.Status))
	}
	if filter.ClassID != nil {
		q = q.Where("class_sessions.class_session_class_id = ?", *filter.ClassID)
	}
	if filter.CourseID != nil {
		q = q.Where("class_sessions.class_session_course_id = ?", *filter.CourseID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count attendance records")
	}

	direction := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		direction = "ASC"
	}
	orderExpr := "attendance_created_at " + direction
	if filter.Sort == "dateOn" {
		orderExpr = "class_sessions.class_session_date " + direction
	}

	var records []m.AttendanceModel
	if err := q.Order(orderExpr).Offset(filter.Offset).Limit(filter.Limit).Find(&records).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance records")
	}
	return records, total, nil
}

func (s *AttendanceService) FindOne(ctx context.Context, id uuid.UUID) (m.AttendanceModel, error) {
	var attendance m.AttendanceModel
	err := s.DB.WithContext(ctx).Where("attendance_id = ?", id).First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendance, fiber.NewError(fiber.StatusNotFound, "Attendance record not found")
	}
	if err != nil {
		return attendance, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance record")
	}
	return attendance, nil
}

func (s *AttendanceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAttendanceRequest) (m.AttendanceModel, error) {
	attendance, err := s.FindOne(ctx, id)
	if err != nil {
		return m.AttendanceModel{}, err
	}

	if req.StudentID != nil {
		var student academics.StudentModel
		err := s.DB.WithContext(ctx).Where("student_id = ?", *req.StudentID).First(&student).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m.AttendanceModel{}, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		if err != nil {
			return m.AttendanceModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
		}
		attendance.AttendanceStudentID = *req.StudentID
	}
	if req.SessionID != nil {
		if _, err := s.getSession(ctx, *req.SessionID); err != nil {
			return m.AttendanceModel{}, err
		}
		attendance.AttendanceSessionID = *req.SessionID
	}

	// re-check the pair when either key moved
	if req.StudentID != nil || req.SessionID != nil {
		var existing m.AttendanceModel
		err := s.DB.WithContext(ctx).
			Where("attendance_student_id = ? AND attendance_session_id = ? AND attendance_id <> ?",
				attendance.AttendanceStudentID, attendance.AttendanceSessionID, attendance.AttendanceID).
			First(&existing).Error
		if err == nil {
			return m.AttendanceModel{}, fiber.NewError(fiber.StatusBadRequest,
				"Attendance record already exists for this student in this session")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return m.AttendanceModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to check duplicate attendance")
		}
	}

	if req.Status != nil {
		attendance.AttendanceStatus = strings.ToUpper(*req.Status)
	}
	if req.Note != nil {
		attendance.AttendanceNote = req.Note
	}

	if err := s.DB.WithContext(ctx).Save(&attendance).Error; err != nil {
		return m.AttendanceModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to update attendance record")
	}
	return attendance, nil
}

func (s *AttendanceService) Remove(ctx context.Context, id uuid.UUID) error {
	attendance, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&attendance).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attendance record")
	}
	return nil
}

func (s *AttendanceService) RemoveBySession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("attendance_session_id = ?", sessionID).
		Delete(&m.AttendanceModel{})
	if res.Error != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attendance records")
	}
	return res.RowsAffected, nil
}

/* ================== BULK WORKFLOWS ================== */

type BulkCreateResult struct {
	Created []m.AttendanceModel `json:"created"`
	Errors  []dto.BulkError     `json:"errors"`
}

// CreateBulk records attendance for many students of one session at once.
// Items that fail validation are collected per student and the rest of the
// batch still commits; only an all-fail batch is an error.
func (s *AttendanceService) CreateBulk(ctx context.Context, req dto.CreateBulkAttendanceRequest) (BulkCreateResult, error) {
	result := BulkCreateResult{Created: []m.AttendanceModel{}, Errors: []dto.BulkError{}}

	if _, err := s.getSession(ctx, req.SessionID); err != nil {
		return result, err
	}

	studentIDs := make([]uuid.UUID, 0, len(req.Students))
	for _, item := range req.Students {
		studentIDs = append(studentIDs, item.StudentID)
	}

	var students []academics.StudentModel
	if err := s.DB.WithContext(ctx).Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
		return result, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}
	studentSet := make(map[uuid.UUID]struct{}, len(students))
	for _, st := range students {
		studentSet[st.StudentID] = struct{}{}
	}

	var existing []m.AttendanceModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_session_id = ? AND attendance_student_id IN ?", req.SessionID, studentIDs).
		Find(&existing).Error; err != nil {
		return result, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch existing attendance")
	}
	existingSet := make(map[uuid.UUID]struct{}, len(existing))
	for _, a := range existing {
		existingSet[a.AttendanceStudentID] = struct{}{}
	}

	for _, item := range req.Students {
		if _, ok := studentSet[item.StudentID]; !ok {
			result.Errors = append(result.Errors, dto.BulkError{StudentID: item.StudentID, Error: "Student not found"})
			continue
		}
		if _, ok := existingSet[item.StudentID]; ok {
			result.Errors = append(result.Errors, dto.BulkError{
				StudentID: item.StudentID,
				Error:     "Attendance record already exists for this student in this session",
			})
			continue
		}
		result.Created = append(result.Created, m.AttendanceModel{
			AttendanceStudentID: item.StudentID,
			AttendanceSessionID: req.SessionID,
			AttendanceStatus:    strings.ToUpper(item.Status),
			AttendanceNote:      item.Note,
		})
	}

	if len(result.Created) > 0 {
		if err := s.DB.WithContext(ctx).Create(&result.Created).Error; err != nil {
			return BulkCreateResult{Created: []m.AttendanceModel{}, Errors: result.Errors},
				fiber.NewError(fiber.StatusInternalServerError, "Failed to save attendance records")
		}
	}

	return result, nil
}

type BulkUpdateResult struct {
	Updated []m.AttendanceModel `json:"updated"`
	Errors  []dto.BulkError     `json:"errors"`
}

// UpdateBulk patches many existing attendance rows of one session.
func (s *AttendanceService) UpdateBulk(ctx context.Context, req dto.UpdateBulkAttendanceRequest) (BulkUpdateResult, error) {
	result := BulkUpdateResult{Updated: []m.AttendanceModel{}, Errors: []dto.BulkError{}}

	if _, err := s.getSession(ctx, req.SessionID); err != nil {
		return result, err
	}

	studentIDs := make([]uuid.UUID, 0, len(req.Students))
	for _, item := range req.Students {
		studentIDs = append(studentIDs, item.StudentID)
	}

	var existing []m.AttendanceModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_session_id = ? AND attendance_student_id IN ?", req.SessionID, studentIDs).
		Find(&existing).Error; err != nil {
		return result, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch existing attendance")
	}
	byStudent := make(map[uuid.UUID]m.AttendanceModel, len(existing))
	for _, a := range existing {
		byStudent[a.AttendanceStudentID] = a
	}

	for _, item := range req.Students {
		attendance, ok := byStudent[item.StudentID]
		if !ok {
			result.Errors = append(result.Errors, dto.BulkError{
				StudentID: item.StudentID,
				Error:     "Attendance record not found for this student in this session",
			})
			continue
		}
		if item.Status != nil {
			attendance.AttendanceStatus = strings.ToUpper(*item.Status)
		}
		if item.Note != nil {
			attendance.AttendanceNote = item.Note
		}
		result.Updated = append(result.Updated, attendance)
	}

	if len(result.Updated) > 0 {
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i := range result.Updated {
				if err := tx.Save(&result.Updated[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return BulkUpdateResult{Updated: []m.AttendanceModel{}, Errors: result.Errors},
				fiber.NewError(fiber.StatusInternalServerError, "Failed to save attendance records")
		}
	}

	return result, nil
}
