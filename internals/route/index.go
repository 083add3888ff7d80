package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "schoolhub_backend/internals/features/school/attendance/route"
	feedbackRoute "schoolhub_backend/internals/features/school/feedback/route"
	authRoute "schoolhub_backend/internals/features/users/auth/route"
	authMiddleware "schoolhub_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// everything below requires a valid token; role gates live in the
	// feature route files
	api := app.Group("/api", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up FeedbackRoutes...")
	feedbackRoute.FeedbackRoutes(api, db)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	attendanceRoute.AttendanceRoutes(api, db)
}
