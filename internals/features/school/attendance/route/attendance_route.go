package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	attendanceController "schoolhub_backend/internals/features/school/attendance/controller"
	authMiddleware "schoolhub_backend/internals/middlewares/auth"
)

// AttendanceRoutes mounts the attendance surface under /attendance,
// staff/admin only.
func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.New(db)

	attendance := r.Group("/attendance",
		authMiddleware.OnlyRoles("Only staff or admin may manage attendance", constants.StaffAndAdmin...),
	)

	attendance.Post("/bulk", ctrl.CreateBulk)
	attendance.Patch("/bulk", ctrl.UpdateBulk)

	attendance.Post("/", ctrl.Create)
	attendance.Get("/", ctrl.List)
	attendance.Get("/:id", ctrl.Get)
	attendance.Patch("/:id", ctrl.Update)
	attendance.Delete("/session/:sessionId", ctrl.DeleteBySession)
	attendance.Delete("/:id", ctrl.Delete)
}
