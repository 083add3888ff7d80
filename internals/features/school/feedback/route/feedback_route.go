package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	feedbackController "schoolhub_backend/internals/features/school/feedback/controller"
	authMiddleware "schoolhub_backend/internals/middlewares/auth"
)

// FeedbackRoutes mounts the feedback surface under /feedback. The group is
// already behind AuthMiddleware; role gates are applied per endpoint.
func FeedbackRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := feedbackController.New(db)

	feedback := r.Group("/feedback")

	// question management: staff/admin only
	questions := feedback.Group("/questions",
		authMiddleware.OnlyRoles("Only staff or admin may manage feedback questions", constants.StaffAndAdmin...),
	)
	questions.Post("/", ctrl.CreateQuestion)
	questions.Get("/", ctrl.ListQuestions)
	questions.Get("/:id", ctrl.GetQuestion)
	questions.Patch("/:id", ctrl.UpdateQuestion)
	questions.Delete("/:id", ctrl.DeleteQuestion)

	// student surface; gated per route, a group with an empty prefix would
	// shadow every /feedback/* path registered after it
	studentOnly := authMiddleware.OnlyRoles("Only students may access feedback forms", constants.RoleStudent)
	feedback.Get("/student/forms", studentOnly, ctrl.GetStudentForms)
	feedback.Post("/submit", studentOnly, ctrl.SubmitFeedback)
	feedback.Patch("/submission", studentOnly, ctrl.UpdateFeedback)
	feedback.Get("/submission", studentOnly, ctrl.GetSubmittedFeedback)

	// teacher view of received feedback
	feedback.Get("/responses",
		authMiddleware.OnlyRoles("Only staff may view feedback responses", constants.RoleStaff),
		authMiddleware.OnlyStaffRole("Only teachers may view feedback responses", constants.StaffRoleTeacher),
		ctrl.GetFeedbackResponses,
	)
}
