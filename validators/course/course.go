package courseValidator

import (
	"strconv"
	"strings"

	"github.com/openvisualizationacademy/ova-site/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetCourseDetail validates course detail request
func GetCourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

// GetSegmentView validates segment view request
func GetSegmentView() fiber.Handler {
	return func(c *fiber.Ctx) error {
		segmentIDStr := strings.TrimSpace(c.Params("id"))
		if segmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Segment ID is required!", nil)
		}

		segmentID, err := strconv.Atoi(segmentIDStr)
		if err != nil || segmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Segment ID!", nil)
		}

		c.Locals("segmentID", uint(segmentID))
		return c.Next()
	}
}

// IssueCertificate validates the certificate issue request
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			DisplayName string `json:"display_name"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.DisplayName = strings.TrimSpace(reqData.DisplayName)
		if reqData.DisplayName == "" {
			errors["display_name"] = "Display name is required!"
		} else if len(reqData.DisplayName) > 100 {
			errors["display_name"] = "Display name must not exceed 100 characters!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", uint(courseID))
		c.Locals("displayName", reqData.DisplayName)
		return c.Next()
	}
}

// SetCoursePublished validates the admin publish toggle
func SetCoursePublished() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}
