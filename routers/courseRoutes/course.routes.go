package courseRoutes

import (
	controllers "github.com/openvisualizationacademy/ova-site/controllers/course"
	"github.com/openvisualizationacademy/ova-site/middleware"
	validators "github.com/openvisualizationacademy/ova-site/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog and outline (anonymous browsing allowed)
	courseGroup.Get("/list", middleware.OptionalJWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/segment/:id", middleware.OptionalJWTMiddleware, validators.GetSegmentView(), controllers.GetSegmentView)
	courseGroup.Get("/:id", middleware.OptionalJWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Watch-progress events; anonymous callers get an echo without writes
	app.Post("/progress/update", middleware.OptionalJWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)

	// Quiz submission
	app.Post("/quiz/:quiz_id/submit", middleware.OptionalJWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)

	// Certificates
	courseGroup.Post("/:course_id/certificate", middleware.JWTMiddleware, validators.IssueCertificate(), controllers.IssueCertificate)

	// Admin publish switch
	adminGroup := app.Group("/admin")
	adminGroup.Post("/course/:id/publish", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.SetCoursePublished(), controllers.SetCoursePublished)
}
