package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/openvisualizationacademy/ova-site/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSegmentView(t *testing.T) {
	app := setupTest(t)
	user := createTestUser(t, "learner@example.com")
	auth := authHeader(t, user)

	course := createCourse(t, "Course")
	ch1 := createChapter(t, course.ID, "Chapter 1", 0)
	ch2 := createChapter(t, course.ID, "Chapter 2", 1)
	s1 := createSegment(t, ch1.ID, "Segment 1", 0)
	s2 := createSegment(t, ch1.ID, "Segment 2", 1)
	s3 := createSegment(t, ch2.ID, "Segment 3", 0)

	require.NoError(t, database.Database.Db.Model(s2).Update("video_url", "https://vimeo.com/76979871").Error)

	status, body := postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/segment/%d", s2.ID), auth, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["status"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "76979871", data["vimeo_id"])
	assert.Equal(t, float64(1), data["chapter_number"])
	assert.Equal(t, float64(2), data["segment_number"])

	next, ok := data["next_segment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(s3.ID), next["id"])

	prev, ok := data["prev_segment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(s1.ID), prev["id"])

	// No progress yet
	assert.Equal(t, float64(0), data["segment_progress"])
	assert.Equal(t, false, data["chapter_completed"])
	assert.Nil(t, data["quiz"])
	assert.Nil(t, data["quiz_submission"])
}

func TestGetSegmentViewNotFound(t *testing.T) {
	app := setupTest(t)

	status, body := postJSON(t, app, http.MethodGet, "/course/segment/999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["status"])
}

func TestSegmentViewHidesQuizAnswers(t *testing.T) {
	app := setupTest(t)

	course := createCourse(t, "Course")
	chapter := createChapter(t, course.ID, "Chapter", 0)
	segment := createSegment(t, chapter.ID, "Segment", 0)
	createQuiz(t, segment.ID, []string{"Q1", "Right", "Wrong"})

	status, body := postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/segment/%d", segment.ID), "", nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	quiz, ok := data["quiz"].(map[string]interface{})
	require.True(t, ok)

	questions := quiz["questions"].([]interface{})
	require.Len(t, questions, 1)

	choices := questions[0].(map[string]interface{})["choices"].([]interface{})
	require.Len(t, choices, 2)
	for _, c := range choices {
		choice := c.(map[string]interface{})
		assert.NotContains(t, choice, "is_correct")
		assert.NotContains(t, choice, "IsCorrect")
	}
}

func TestSegmentViewProgressContext(t *testing.T) {
	app := setupTest(t)
	user := createTestUser(t, "learner@example.com")
	auth := authHeader(t, user)

	course := createCourse(t, "Course")
	chapter := createChapter(t, course.ID, "Chapter", 0)
	s1 := createSegment(t, chapter.ID, "Segment 1", 0)
	s2 := createSegment(t, chapter.ID, "Segment 2", 1)

	postProgress(t, app, auth, s1.ID, 100)
	postProgress(t, app, auth, s2.ID, 40)

	status, body := postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/segment/%d", s2.ID), auth, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(40), data["segment_progress"])
	assert.Equal(t, float64(50), data["chapter_percent_complete"])
	assert.Equal(t, false, data["chapter_completed"])
	assert.Equal(t, float64(0), data["course_percent_complete"])
}

func TestSegmentViewShowsPreviousQuizSubmission(t *testing.T) {
	app := setupTest(t)
	user := createTestUser(t, "learner@example.com")
	auth := authHeader(t, user)

	course := createCourse(t, "Course")
	chapter := createChapter(t, course.ID, "Chapter", 0)
	segment := createSegment(t, chapter.ID, "Segment", 0)
	quiz := createQuiz(t, segment.ID, []string{"Q1", "Right", "Wrong"})

	questions := quizQuestions(t, quiz.ID)
	choices := questionChoices(t, questions[0].ID)

	postQuiz(t, app, auth, quiz.ID, map[string]interface{}{
		fmt.Sprintf("%d", questions[0].ID): choices[0].ID,
	})

	status, body := postJSON(t, app, http.MethodGet, fmt.Sprintf("/course/segment/%d", segment.ID), auth, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	submission, ok := data["quiz_submission"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, submission["submitted"])
	assert.Equal(t, float64(100), submission["score"])

	// Fresh quiz markup is still served alongside the submission
	require.NotNil(t, data["quiz"])
}
