package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/openvisualizationacademy/ova-site/database"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGetAllCourses(t *testing.T) {
	app := setupTest(t)

	createCourse(t, "Published Course")

	draft := courseModels.Course{Title: "Draft Course", IsPublished: false}
	require.NoError(t, database.Database.Db.Create(&draft).Error)

	soon := courseModels.Course{Title: "Upcoming Course", IsPublished: true, ReleaseLabel: "Coming Spring 2027"}
	require.NoError(t, database.Database.Db.Create(&soon).Error)

	status, body := postJSON(t, app, http.MethodGet, "/course/list", "", nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])

	courses := data["courses"].([]interface{})
	require.Len(t, courses, 2)

	byTitle := make(map[string]map[string]interface{})
	for _, c := range courses {
		item := c.(map[string]interface{})
		byTitle[item["title"].(string)] = item
	}
	assert.NotContains(t, byTitle, "Draft Course")
	assert.Equal(t, false, byTitle["Published Course"]["coming_soon"])
	assert.Equal(t, true, byTitle["Upcoming Course"]["coming_soon"])
}

func TestGetCourseDetailsOutline(t *testing.T) {
	app := setupTest(t)
	user := createTestUser(t, "learner@example.com")
	auth := authHeader(t, user)

	course := createCourse(t, "Course")
	ch1 := createChapter(t, course.ID, "Chapter 1", 0)
	createChapter(t, course.ID, "Chapter 2", 1)
	createSegment(t, ch1.ID, "Segment 1", 0)
	createSegment(t, ch1.ID, "Segment 2", 1)

	status, body := postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d", course.ID), auth, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["coming_soon"])

	chapters := data["chapters"].([]interface{})
	require.Len(t, chapters, 2)

	first := chapters[0].(map[string]interface{})
	assert.Equal(t, "Chapter 1", first["title"])
	assert.Len(t, first["segments"].([]interface{}), 2)

	// No CourseProgress row yet, so no progress attached
	assert.NotContains(t, data, "course_progress")
}

func TestGetCourseDetailsAttachesProgress(t *testing.T) {
	app := setupTest(t)
	user := createTestUser(t, "learner@example.com")
	auth := authHeader(t, user)

	course := createCourse(t, "Course")
	chapter := createChapter(t, course.ID, "Chapter", 0)
	segment := createSegment(t, chapter.ID, "Segment", 0)

	postProgress(t, app, auth, segment.ID, 100)

	status, body := postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d", course.ID), auth, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	progress, ok := data["course_progress"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, progress["completed"])
}

func TestComingSoonGating(t *testing.T) {
	app := setupTest(t)

	course := courseModels.Course{
		Title:         "Gated Course",
		IsPublished:   true,
		ReleaseLabel:  "Coming Spring 2027",
		AllowedEmails: datatypes.JSON([]byte(`["Insider@Example.com"]`)),
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	chapter := createChapter(t, course.ID, "Chapter", 0)
	createSegment(t, chapter.ID, "Segment", 0)

	// Anonymous callers only get the label
	status, body := postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d", course.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["coming_soon"])
	assert.Equal(t, "Coming Spring 2027", data["release_label"])
	assert.NotContains(t, data, "chapters")

	// A signed-in user not on the list is gated too
	outsider := createTestUser(t, "outsider@example.com")
	status, body = postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d", course.ID), authHeader(t, outsider), nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, true, data["coming_soon"])

	// Allow-list match is case-insensitive
	insider := createTestUser(t, "insider@example.com")
	status, body = postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d", course.ID), authHeader(t, insider), nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, false, data["coming_soon"])
	assert.Contains(t, data, "chapters")
}

func TestGetCourseDetailsNotFound(t *testing.T) {
	app := setupTest(t)

	status, body := postJSON(t, app, http.MethodGet, "/course/999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["status"])

	status, _ = postJSON(t, app, http.MethodGet, "/course/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
