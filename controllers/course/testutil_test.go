package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openvisualizationacademy/ova-site/config"
	"github.com/openvisualizationacademy/ova-site/database"
	"github.com/openvisualizationacademy/ova-site/middleware"
	"github.com/openvisualizationacademy/ova-site/models"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"
	courseValidator "github.com/openvisualizationacademy/ova-site/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int

// setupTest wires an in-memory database into the global handle and returns a
// fiber app with the learner-facing routes registered.
func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:         "3000",
		JWTKey:       "test-secret",
		LoginCodeTTL: 10,
	}

	testDBCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/progress/update", middleware.OptionalJWTMiddleware, courseValidator.UpdateProgress(), UpdateProgress)
	app.Post("/quiz/:quiz_id/submit", middleware.OptionalJWTMiddleware, courseValidator.SubmitQuiz(), SubmitQuiz)
	app.Get("/course/list", middleware.OptionalJWTMiddleware, GetAllCourses)
	app.Get("/course/segment/:id", middleware.OptionalJWTMiddleware, courseValidator.GetSegmentView(), GetSegmentView)
	app.Get("/course/:id", middleware.OptionalJWTMiddleware, courseValidator.GetCourseDetail(), GetCourseDetails)
	app.Post("/course/:course_id/certificate", middleware.JWTMiddleware, courseValidator.IssueCertificate(), IssueCertificate)
	app.Get("/user/certificates", middleware.JWTMiddleware, GetUserCertificates)
	app.Post("/admin/course/:id/publish", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), courseValidator.SetCoursePublished(), SetCoursePublished)

	return app
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return &user
}

func authHeader(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func createCourse(t *testing.T, title string) *courseModels.Course {
	t.Helper()
	course := courseModels.Course{Title: title, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return &course
}

func createChapter(t *testing.T, courseID uint, title string, order int) *courseModels.Chapter {
	t.Helper()
	chapter := courseModels.Chapter{CourseID: courseID, Title: title, OrderIndex: order, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&chapter).Error)
	return &chapter
}

func createSegment(t *testing.T, chapterID uint, title string, order int) *courseModels.Segment {
	t.Helper()
	segment := courseModels.Segment{ChapterID: chapterID, Title: title, OrderIndex: order, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&segment).Error)
	return &segment
}

func createQuiz(t *testing.T, segmentID uint, questions ...[]string) *courseModels.Quiz {
	t.Helper()
	db := database.Database.Db

	quiz := courseModels.Quiz{SegmentID: segmentID, Title: "Checkpoint"}
	require.NoError(t, db.Create(&quiz).Error)

	// Each entry is a question: first element the text, then its choices,
	// the first choice being the correct one.
	for i, q := range questions {
		question := courseModels.Question{QuizID: quiz.ID, Text: q[0], OrderIndex: i}
		require.NoError(t, db.Create(&question).Error)
		for j, text := range q[1:] {
			choice := courseModels.Choice{QuestionID: question.ID, Text: text, IsCorrect: j == 0, OrderIndex: j}
			require.NoError(t, db.Create(&choice).Error)
		}
	}

	return &quiz
}

// postJSON issues a request against the test app and decodes the JSON reply
func postJSON(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	result := make(map[string]interface{})
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	}

	return resp.StatusCode, result
}

func postProgress(t *testing.T, app *fiber.App, auth string, segmentID uint, percent interface{}) (int, map[string]interface{}) {
	t.Helper()
	return postJSON(t, app, http.MethodPost, "/progress/update", auth, map[string]interface{}{
		"segment_id":      segmentID,
		"percent_watched": percent,
	})
}
