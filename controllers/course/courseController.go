package controllers

import (
	"encoding/json"
	"strings"

	"github.com/openvisualizationacademy/ova-site/database"
	"github.com/openvisualizationacademy/ova-site/middleware"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for the catalog page
func GetAllCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("is_deleted = ? AND is_published = ?", false, true).
		Order("order_index asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type courseListItem struct {
		courseModels.Course
		ComingSoon bool `json:"coming_soon"`
	}

	result := make([]courseListItem, len(courses))
	for i, course := range courses {
		result[i] = courseListItem{
			Course:     course,
			ComingSoon: course.ReleaseLabel != "",
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}

// chapterWithSegments is the course outline shape
type chapterWithSegments struct {
	courseModels.Chapter
	Segments []courseModels.Segment `json:"segments"`
}

// GetCourseDetails returns a course with its chapter/segment outline.
// Courses carrying a release label are "coming soon": only callers on the
// email allow-list see the outline, everyone else gets the label.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Coming-soon gating. Access control only, completion logic is untouched.
	if course.ReleaseLabel != "" {
		email, _ := c.Locals("email").(string)
		if !emailAllowed(&course, email) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
				"course":        course,
				"coming_soon":   true,
				"release_label": course.ReleaseLabel,
			})
		}
	}

	chapters := liveChaptersOf(course.ID)
	outline := make([]chapterWithSegments, len(chapters))
	for i, ch := range chapters {
		outline[i] = chapterWithSegments{
			Chapter:  ch,
			Segments: liveSegmentsOf(ch.ID),
		}
	}

	response := fiber.Map{
		"course":      course,
		"chapters":    outline,
		"coming_soon": false,
	}

	// Attach stored completion for signed-in users
	if userID, ok := c.Locals("userId").(uint); ok {
		var cp courseModels.CourseProgress
		if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&cp).Error; err == nil {
			response["course_progress"] = cp
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", response)
}

// emailAllowed checks the coming-soon allow-list, case-insensitively
func emailAllowed(course *courseModels.Course, email string) bool {
	if email == "" || len(course.AllowedEmails) == 0 {
		return false
	}

	var allowed []string
	if err := json.Unmarshal(course.AllowedEmails, &allowed); err != nil {
		return false
	}

	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), email) {
			return true
		}
	}
	return false
}
