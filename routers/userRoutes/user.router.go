package userRoutes

import (
	controllers "github.com/openvisualizationacademy/ova-site/controllers/course"
	"github.com/openvisualizationacademy/ova-site/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up routes scoped to the signed-in user
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
