package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/openvisualizationacademy/ova-site/database"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCoursePublished(t *testing.T) {
	app := setupTest(t)

	admin := createTestUser(t, "admin@example.com")
	require.NoError(t, database.Database.Db.Model(admin).Update("role", "ADMIN").Error)
	admin.Role = "ADMIN"
	adminAuth := authHeader(t, admin)

	course := createCourse(t, "Course")

	status, _ := postJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", course.ID), adminAuth,
		fiber.Map{"is_published": false})
	require.Equal(t, http.StatusOK, status)

	var reloaded courseModels.Course
	require.NoError(t, database.Database.Db.First(&reloaded, course.ID).Error)
	assert.False(t, reloaded.IsPublished)

	// Missing flag is rejected
	status, _ = postJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", course.ID), adminAuth, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSetCoursePublishedRequiresAdmin(t *testing.T) {
	app := setupTest(t)

	learner := createTestUser(t, "learner@example.com")
	course := createCourse(t, "Course")

	status, _ := postJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", course.ID), authHeader(t, learner),
		fiber.Map{"is_published": false})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = postJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", course.ID), "",
		fiber.Map{"is_published": false})
	assert.Equal(t, http.StatusUnauthorized, status)
}
