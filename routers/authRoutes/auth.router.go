package authRoutes

import (
	authController "github.com/openvisualizationacademy/ova-site/controllers/auth"
	validators "github.com/openvisualizationacademy/ova-site/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up the login-by-code routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login/request-code", validators.RequestLoginCode(), authController.RequestLoginCode)
	authGroup.Post("/login/verify", validators.VerifyLoginCode(), authController.VerifyLoginCode)
}
