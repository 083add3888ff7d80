package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	academics "schoolhub_backend/internals/features/school/academics/model"
	dto "schoolhub_backend/internals/features/school/attendance/dto"
	m "schoolhub_backend/internals/features/school/attendance/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&academics.StudentModel{},
		&academics.ClassSessionModel{},
		&m.AttendanceModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, code string) academics.StudentModel {
	t.Helper()
	student := academics.StudentModel{
		StudentUserID:       uuid.New(),
		StudentCode:         code,
		StudentEnrolmentDay: time.Now(),
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seed student %s: %v", code, err)
	}
	return student
}

func seedSession(t *testing.T, db *gorm.DB, date time.Time) academics.ClassSessionModel {
	t.Helper()
	session := academics.ClassSessionModel{
		ClassSessionClassID:  uuid.New(),
		ClassSessionCourseID: uuid.New(),
		ClassSessionDate:     date,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return session
}

func assertStatus(t *testing.T, err error, want int) *fiber.Error {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fiber.Error, got %v", err)
	}
	if fe.Code != want {
		t.Fatalf("status = %d, want %d (message %q)", fe.Code, want, fe.Message)
	}
	return fe
}

func strPtr(v string) *string { return &v }

func TestCreateAttendance(t *testing.T) {
	db := openTestDB(t)
	svc := New(db)
	ctx := context.Background()

	student := seedStudent(t, db, "S001")
	session := seedSession(t, db, time.Now())

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: uuid.New(), SessionID: session.ClassSessionID})
		assertStatus(t, err, fiber.StatusNotFound)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: student.StudentID, SessionID: uuid.New()})
		assertStatus(t, err, fiber.StatusNotFound)
	})

	t.Run("defaults to pending", func(t *testing.T) {
		rec, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: student.StudentID, SessionID: session.ClassSessionID})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if rec.AttendanceStatus != m.AttendanceStatusPending {
			t.Fatalf("status = %q, want PENDING", rec.AttendanceStatus)
		}
	})

	t.Run("duplicate pair rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: student.StudentID, SessionID: session.ClassSessionID})
		fe := assertStatus(t, err, fiber.StatusBadRequest)
		if fe.Message != "Attendance record already exists for this student in this session" {
			t.Fatalf("message %q", fe.Message)
		}
	})
}

func TestUpdateAttendance(t *testing.T) {
	db := openTestDB(t)
	svc := New(db)
	ctx := context.Background()

	student := seedStudent(t, db, "S001")
	other := seedStudent(t, db, "S002")
	session := seedSession(t, db, time.Now())

	rec, err := svc.Create(ctx, dto.CreateAttendanceRequest{
		StudentID: student.StudentID, SessionID: session.ClassSessionID, Status: m.AttendanceStatusAbsent,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	otherRec, err := svc.Create(ctx, dto.CreateAttendanceRequest{
		StudentID: other.StudentID, SessionID: session.ClassSessionID,
	})
	if err != nil {
		t.Fatalf("create other: %v", err)
	}

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), dto.UpdateAttendanceRequest{Status: strPtr(m.AttendanceStatusLate)})
		assertStatus(t, err, fiber.StatusNotFound)
	})

	t.Run("status and note", func(t *testing.T) {
		updated, err := svc.Update(ctx, rec.AttendanceID, dto.UpdateAttendanceRequest{
			Status: strPtr("late"),
			Note:   strPtr("bus delay"),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.AttendanceStatus != m.AttendanceStatusLate {
			t.Fatalf("status = %q, want LATE", updated.AttendanceStatus)
		}
		if updated.AttendanceNote == nil || *updated.AttendanceNote != "bus delay" {
			t.Fatalf("note = %v", updated.AttendanceNote)
		}
	})

	t.Run("moving onto an existing pair rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, otherRec.AttendanceID, dto.UpdateAttendanceRequest{StudentID: &student.StudentID})
		assertStatus(t, err, fiber.StatusBadRequest)
	})
}

func TestFindAllAttendance(t *testing.T) {
	db := openTestDB(t)
	svc := New(db)
	ctx := context.Background()

	s1 := seedStudent(t, db, "S001")
	s2 := seedStudent(t, db, "S002")
	early := seedSession(t, db, time.Now().AddDate(0, 0, -7))
	late := seedSession(t, db, time.Now())

	seed := []dto.CreateAttendanceRequest{
		{StudentID: s1.StudentID, SessionID: early.ClassSessionID, Status: m.AttendanceStatusPresent},
		{StudentID: s1.StudentID, SessionID: late.ClassSessionID, Status: m.AttendanceStatusAbsent},
		{StudentID: s2.StudentID, SessionID: late.ClassSessionID, Status: m.AttendanceStatusPresent},
	}
	for _, req := range seed {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("seed attendance: %v", err)
		}
	}

	t.Run("by student", func(t *testing.T) {
		records, total, err := svc.FindAll(ctx, dto.ListAttendanceFilter{StudentID: &s1.StudentID, Limit: 10})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if total != 2 || len(records) != 2 {
			t.Fatalf("got %d/%d, want 2/2", len(records), total)
		}
	})

	t.Run("by status", func(t *testing.T) {
		_, total, err := svc.FindAll(ctx, dto.ListAttendanceFilter{Status: "present", Limit: 10})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if total != 2 {
			t.Fatalf("total = %d, want 2", total)
		}
	})

	t.Run("by class via session join", func(t *testing.T) {
		records, total, err := svc.FindAll(ctx, dto.ListAttendanceFilter{ClassID: &late.ClassSessionClassID, Limit: 10})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if total != 2 || len(records) != 2 {
			t.Fatalf("got %d/%d, want 2/2", len(records), total)
		}
	})

	t.Run("sort by session date ascending", func(t *testing.T) {
		records, _, err := svc.FindAll(ctx, dto.ListAttendanceFilter{
			StudentID: &s1.StudentID, Sort: "dateOn", Order: "asc", Limit: 10,
		})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(records) != 2 || records[0].AttendanceSessionID != early.ClassSessionID {
			t.Fatal("earliest session must come first")
		}
	})

	t.Run("paging", func(t *testing.T) {
		records, total, err := svc.FindAll(ctx, dto.ListAttendanceFilter{Limit: 2})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if total != 3 || len(records) != 2 {
			t.Fatalf("got %d/%d, want 2/3", len(records), total)
		}
	})
}

func TestRemoveAttendance(t *testing.T) {
	db := openTestDB(t)
	svc := New(db)
	ctx := context.Background()

	s1 := seedStudent(t, db, "S001")
	s2 := seedStudent(t, db, "S002")
	session := seedSession(t, db, time.Now())

	rec, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: s1.StudentID, SessionID: session.ClassSessionID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: s2.StudentID, SessionID: session.ClassSessionID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Remove(ctx, rec.AttendanceID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, err = svc.FindOne(ctx, rec.AttendanceID)
	assertStatus(t, err, fiber.StatusNotFound)

	deleted, err := svc.RemoveBySession(ctx, session.ClassSessionID)
	if err != nil {
		t.Fatalf("remove by session: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
}

/* ================== BULK ================== */

func TestCreateBulkAttendance(t *testing.T) {
	db := openTestDB(t)
	svc := New(db)
	ctx := context.Background()

	s1 := seedStudent(t, db, "S001")
	s2 := seedStudent(t, db, "S002")
	session := seedSession(t, db, time.Now())

	// s2 already has a record; the batch must skip it and land the rest
	if _, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: s2.StudentID, SessionID: session.ClassSessionID}); err != nil {
		t.Fatalf("seed existing: %v", err)
	}

	ghost := uuid.New()
	result, err := svc.CreateBulk(ctx, dto.CreateBulkAttendanceRequest{
		SessionID: session.ClassSessionID,
		Students: []dto.BulkAttendanceItem{
			{StudentID: s1.StudentID, Status: m.AttendanceStatusPresent},
			{StudentID: s2.StudentID, Status: m.AttendanceStatusPresent},
			{StudentID: ghost, Status: m.AttendanceStatusAbsent},
		},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0].AttendanceStudentID != s1.StudentID {
		t.Fatalf("created = %+v, want only S001", result.Created)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %d, want 2", len(result.Errors))
	}
	byStudent := map[uuid.UUID]string{}
	for _, e := range result.Errors {
		byStudent[e.StudentID] = e.Error
	}
	if byStudent[ghost] != "Student not found" {
		t.Fatalf("ghost error = %q", byStudent[ghost])
	}
	if byStudent[s2.StudentID] != "Attendance record already exists for this student in this session" {
		t.Fatalf("duplicate error = %q", byStudent[s2.StudentID])
	}

	var total int64
	if err := db.Model(&m.AttendanceModel{}).Count(&total).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 {
		t.Fatalf("rows = %d, want 2", total)
	}

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.CreateBulk(ctx, dto.CreateBulkAttendanceRequest{
			SessionID: uuid.New(),
			Students:  []dto.BulkAttendanceItem{{StudentID: s1.StudentID, Status: m.AttendanceStatusPresent}},
		})
		assertStatus(t, err, fiber.StatusNotFound)
	})
}

func TestUpdateBulkAttendance(t *testing.T) {
	db := openTestDB(t)
	svc := New(db)
	ctx := context.Background()

	s1 := seedStudent(t, db, "S001")
	s2 := seedStudent(t, db, "S002")
	session := seedSession(t, db, time.Now())

	if _, err := svc.Create(ctx, dto.CreateAttendanceRequest{StudentID: s1.StudentID, SessionID: session.ClassSessionID}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	result, err := svc.UpdateBulk(ctx, dto.UpdateBulkAttendanceRequest{
		SessionID: session.ClassSessionID,
		Students: []dto.UpdateBulkAttendanceItem{
			{StudentID: s1.StudentID, Status: strPtr("present"), Note: strPtr("on time")},
			{StudentID: s2.StudentID, Status: strPtr("absent")},
		},
	})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0].AttendanceStatus != m.AttendanceStatusPresent {
		t.Fatalf("updated = %+v", result.Updated)
	}
	if len(result.Errors) != 1 || result.Errors[0].StudentID != s2.StudentID {
		t.Fatalf("errors = %+v", result.Errors)
	}

	stored, err := svc.FindOne(ctx, result.Updated[0].AttendanceID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.AttendanceStatus != m.AttendanceStatusPresent || stored.AttendanceNote == nil || *stored.AttendanceNote != "on time" {
		t.Fatalf("patch not persisted: %+v", stored)
	}
}
