package route

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schoolhub_backend/internals/constants"
	academics "schoolhub_backend/internals/features/school/academics/model"
	m "schoolhub_backend/internals/features/school/feedback/model"
	usermodel "schoolhub_backend/internals/features/users/user/model"
	helper "schoolhub_backend/internals/helpers"
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
		&usermodel.UserModel{},
		&academics.StudentModel{},
		&academics.StaffModel{},
		&academics.CourseModel{},
		&academics.ClassModel{},
		&academics.ClassCourseModel{},
		&academics.TermModel{},
		&m.FeedbackQuestionModel{},
		&m.FeedbackResponseModel{},
		&m.FeedbackSubmissionModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestApp mounts the feedback routes behind a stub that plants the locals
// the auth middleware would normally extract from the bearer token.
func newTestApp(db *gorm.DB, locals map[string]interface{}) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		return c.Next()
	})
	FeedbackRoutes(app, db)
	return app
}

func TestFeedbackRouteRoleGates(t *testing.T) {
	db := openTestDB(t)

	teacher := academics.StaffModel{
		StaffUserID:   uuid.New(),
		StaffCode:     "T001",
		StaffRole:     constants.StaffRoleTeacher,
		StaffHireDate: time.Now(),
	}
	if err := db.Create(&teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	student := academics.StudentModel{
		StudentUserID:       uuid.New(),
		StudentCode:         "S001",
		StudentEnrolmentDay: time.Now(),
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}

	teacherLocals := map[string]interface{}{
		"userRole":   constants.RoleStaff,
		"staff_role": constants.StaffRoleTeacher,
		"staff_id":   teacher.StaffID.String(),
	}
	studentLocals := map[string]interface{}{
		"userRole":   constants.RoleStudent,
		"student_id": student.StudentID.String(),
	}
	adminLocals := map[string]interface{}{
		"userRole": constants.RoleAdmin,
	}

	tests := []struct {
		name       string
		locals     map[string]interface{}
		method     string
		path       string
		wantStatus int
	}{
		// the teacher view must stay reachable for STAFF/TEACHER callers even
		// though student routes are registered first
		{name: "teacher reads responses", locals: teacherLocals, method: "GET", path: "/feedback/responses", wantStatus: fiber.StatusOK},
		{name: "student blocked from responses", locals: studentLocals, method: "GET", path: "/feedback/responses", wantStatus: fiber.StatusForbidden},
		{name: "student reads own forms", locals: studentLocals, method: "GET", path: "/feedback/student/forms", wantStatus: fiber.StatusOK},
		{name: "staff blocked from student forms", locals: teacherLocals, method: "GET", path: "/feedback/student/forms", wantStatus: fiber.StatusForbidden},
		{name: "staff lists questions", locals: teacherLocals, method: "GET", path: "/feedback/questions/", wantStatus: fiber.StatusOK},
		{name: "admin lists questions", locals: adminLocals, method: "GET", path: "/feedback/questions/", wantStatus: fiber.StatusOK},
		{name: "student blocked from questions", locals: studentLocals, method: "GET", path: "/feedback/questions/", wantStatus: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(db, tt.locals)
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("%s %s = %d, want %d", tt.method, tt.path, resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
