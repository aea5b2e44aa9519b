package controllers

import (
	"regexp"

	"github.com/openvisualizationacademy/ova-site/database"
	"github.com/openvisualizationacademy/ova-site/middleware"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"

	"github.com/gofiber/fiber/v2"
)

var vimeoIDPattern = regexp.MustCompile(`vimeo\.com/(\d+)`)

// segmentRef is the slim shape used for prev/next navigation links
type segmentRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// choiceView hides IsCorrect from learners
type choiceView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	ID      uint         `json:"id"`
	Text    string       `json:"text"`
	Choices []choiceView `json:"choices"`
}

type quizView struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Questions []questionView `json:"questions"`
}

// GetSegmentView returns everything the segment page needs: video info,
// position within chapter and course, navigation, the quiz (without
// answers), and for signed-in users their progress and any previous quiz
// submission.
func GetSegmentView(c *fiber.Ctx) error {
	segmentID := c.Locals("segmentID").(uint)

	var segment courseModels.Segment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", segmentID, false, true).First(&segment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Segment not found!", nil)
	}

	chapter := parentChapterOf(&segment)
	var course *courseModels.Course
	if chapter != nil {
		course = parentCourseOf(chapter)
	}

	// Vimeo id for the player embed
	vimeoID := ""
	if m := vimeoIDPattern.FindStringSubmatch(segment.VideoURL); m != nil {
		vimeoID = m[1]
	}

	// Position numbers are 1-based among live siblings
	chapterNumber := 0
	segmentNumber := 0
	if chapter != nil {
		for i, ch := range liveChaptersOf(chapter.CourseID) {
			if ch.ID == chapter.ID {
				chapterNumber = i + 1
				break
			}
		}
		for i, s := range liveSegmentsOf(chapter.ID) {
			if s.ID == segment.ID {
				segmentNumber = i + 1
				break
			}
		}
	}

	var nextRef, prevRef *segmentRef
	if next := adjacentSegment(&segment, +1); next != nil {
		nextRef = &segmentRef{ID: next.ID, Title: next.Title, Slug: next.Slug}
	}
	if prev := adjacentSegment(&segment, -1); prev != nil {
		prevRef = &segmentRef{ID: prev.ID, Title: prev.Title, Slug: prev.Slug}
	}

	// First quiz on the segment, answers stripped
	quiz := getSegmentQuiz(segment.ID)

	response := fiber.Map{
		"segment":        segment,
		"vimeo_id":       vimeoID,
		"chapter":        chapter,
		"course":         course,
		"chapter_number": chapterNumber,
		"segment_number": segmentNumber,
		"next_segment":   nextRef,
		"prev_segment":   prevRef,
		"quiz":           quiz,
	}

	// Defaults for anonymous users
	response["segment_progress"] = 0.0
	response["chapter_percent_complete"] = 0
	response["course_percent_complete"] = 0
	response["chapter_completed"] = false
	response["course_completed"] = false
	response["quiz_submission"] = nil

	userID, authenticated := c.Locals("userId").(uint)
	if authenticated {
		fillProgressContext(response, userID, &segment, chapter, course)

		if quiz != nil {
			if view := hydrateQuizFromProgress(userID, quiz.ID); view != nil {
				response["quiz_submission"] = view
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Segment fetched successfully!", response)
}

// getSegmentQuiz loads the first live quiz of a segment with its questions
// and choices. IsCorrect never leaves the server here.
func getSegmentQuiz(segmentID uint) *quizView {
	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("segment_id = ? AND is_deleted = ?", segmentID, false).Order("id asc").First(&quiz).Error; err != nil {
		return nil
	}

	var questions []courseModels.Question
	db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions)

	view := quizView{ID: quiz.ID, Title: quiz.Title, Questions: make([]questionView, len(questions))}
	for i, q := range questions {
		var choices []courseModels.Choice
		db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Order("order_index asc").Find(&choices)

		qv := questionView{ID: q.ID, Text: q.Text, Choices: make([]choiceView, len(choices))}
		for j, ch := range choices {
			qv.Choices[j] = choiceView{ID: ch.ID, Text: ch.Text}
		}
		view.Questions[i] = qv
	}

	return &view
}

// fillProgressContext adds the signed-in user's progress numbers to the
// segment page payload: current segment percent, share of completed
// segments in the chapter and chapters in the course, and the stored
// completion flags.
func fillProgressContext(response fiber.Map, userID uint, segment *courseModels.Segment, chapter *courseModels.Chapter, course *courseModels.Course) {
	db := database.Database.Db

	// Current segment progress
	var sp courseModels.SegmentProgress
	if err := db.Where("user_id = ? AND segment_id = ?", userID, segment.ID).First(&sp).Error; err == nil {
		response["segment_progress"] = sp.PercentWatched
	}

	if chapter != nil {
		segments := liveSegmentsOf(chapter.ID)
		if len(segments) > 0 {
			segmentIDs := make([]uint, len(segments))
			for i, s := range segments {
				segmentIDs[i] = s.ID
			}

			var completedSegments int64
			db.Model(&courseModels.SegmentProgress{}).
				Where("user_id = ? AND segment_id IN ? AND percent_watched >= ?", userID, segmentIDs, 100.0).
				Count(&completedSegments)

			response["chapter_percent_complete"] = int(completedSegments * 100 / int64(len(segments)))
		}

		var cp courseModels.ChapterProgress
		if err := db.Where("user_id = ? AND chapter_id = ?", userID, chapter.ID).First(&cp).Error; err == nil {
			response["chapter_completed"] = cp.Completed
		}
	}

	if course != nil {
		chapters := liveChaptersOf(course.ID)
		if len(chapters) > 0 {
			chapterIDs := make([]uint, len(chapters))
			for i, ch := range chapters {
				chapterIDs[i] = ch.ID
			}

			var completedChapters int64
			db.Model(&courseModels.ChapterProgress{}).
				Where("user_id = ? AND chapter_id IN ? AND completed = ?", userID, chapterIDs, true).
				Count(&completedChapters)

			response["course_percent_complete"] = int(completedChapters * 100 / int64(len(chapters)))
		}

		var cp courseModels.CourseProgress
		if err := db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&cp).Error; err == nil {
			response["course_completed"] = cp.Completed
		}
	}
}
