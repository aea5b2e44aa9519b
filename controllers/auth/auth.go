package authController

import (
	"log"
	"strings"
	"time"

	"github.com/openvisualizationacademy/ova-site/config"
	"github.com/openvisualizationacademy/ova-site/database"
	"github.com/openvisualizationacademy/ova-site/middleware"
	"github.com/openvisualizationacademy/ova-site/models"
	"github.com/openvisualizationacademy/ova-site/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLoginCode starts a login-by-code flow. Unknown emails are
// auto-created as users; the code verification doubles as the email
// verification, so there is no separate signup.
func RequestLoginCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLoginRequest").(*struct {
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Normalize email to lowercase for consistent lookups
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	// Find or auto-create the user
	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		user = models.User{Email: email, IsActive: false}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error creating user for %s: %v", email, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}
	}

	// Create the login code
	code := utils.GenerateLoginCode()
	loginCode := models.LoginCode{
		UserID:    user.ID,
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(time.Duration(config.AppConfig.LoginCodeTTL) * time.Minute),
	}
	if err := db.Create(&loginCode).Error; err != nil {
		log.Printf("Error saving login code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	go utils.SendLoginCodeEmail(email, code, config.AppConfig.LoginCodeTTL)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login code sent. Check your email.", fiber.Map{
		"email": email,
	})
}

// VerifyLoginCode exchanges a valid login code for a JWT. The first
// successful verification activates the auto-created user.
func VerifyLoginCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLoginVerify").(*struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or code!", nil)
	}

	// Latest unused, unexpired code for this user
	var loginCode models.LoginCode
	err := db.Where("user_id = ? AND code = ? AND is_used = ? AND is_deleted = ? AND expires_at > ?",
		user.ID, strings.TrimSpace(reqData.Code), false, false, time.Now()).
		Order("created_at desc").First(&loginCode).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or code!", nil)
	}

	// Burn the code
	loginCode.IsUsed = true
	db.Save(&loginCode)

	// Activate the user and record the login
	user.IsActive = true
	user.IsEmailVerified = true
	user.LastLogin = time.Now()
	db.Save(&user)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}
