package controllers

import (
	"github.com/openvisualizationacademy/ova-site/database"
	"github.com/openvisualizationacademy/ova-site/middleware"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"

	"github.com/gofiber/fiber/v2"
)

// SetCoursePublished flips the publish flag on a course. Authoring happens
// through the structure importer; this is the one admin switch the API keeps.
func SetCoursePublished(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData := new(struct {
		IsPublished *bool `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.IsPublished == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = *reqData.IsPublished
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}
