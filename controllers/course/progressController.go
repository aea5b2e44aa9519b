package controllers

import (
	"time"

	"github.com/openvisualizationacademy/ova-site/database"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpdateProgress accepts a single segment-watch event and rolls it up the
// tree: the segment row is overwritten, then chapter and course completion
// are recomputed from current progress rows. Anonymous callers get the
// clamped echo back without any writes.
func UpdateProgress(c *fiber.Ctx) error {
	// Retrieve validated input
	segmentID := c.Locals("segmentID").(uint)
	percent := c.Locals("percentWatched").(float64)

	// Clamp percent to 0-100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	// Check if segment exists
	var segment courseModels.Segment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", segmentID, false).First(&segment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Segment not found"})
	}

	userID, authenticated := c.Locals("userId").(uint)

	chapterCompleted := false
	courseCompleted := false

	if authenticated {
		chapterCompleted, courseCompleted = applyWatchEvent(userID, &segment, percent)
	}

	// Anonymous users don't get persisted state or completion inference
	return c.JSON(fiber.Map{
		"segment_id":        segment.ID,
		"saved":             authenticated,
		"percent_watched":   percent,
		"chapter_completed": chapterCompleted,
		"course_completed":  courseCompleted,
	})
}

// applyWatchEvent writes the segment progress row and cascades completion up
// to the chapter and course. Writes are strictly ordered segment -> chapter
// -> course because the course predicate reads freshly-written chapter state.
// Returned flags are sticky: a previously stamped completion is never
// reported false again.
func applyWatchEvent(userID uint, segment *courseModels.Segment, percent float64) (bool, bool) {
	db := database.Database.Db

	// Save or update SegmentProgress; last write wins, no max-merge
	var sp courseModels.SegmentProgress
	if err := db.Where("user_id = ? AND segment_id = ?", userID, segment.ID).First(&sp).Error; err != nil {
		sp = courseModels.SegmentProgress{UserID: userID, SegmentID: segment.ID}
	}
	sp.PercentWatched = percent
	db.Save(&sp)

	chapterCompleted := false
	courseCompleted := false

	// Resolve chapter and recompute its completion
	chapter := parentChapterOf(segment)
	if chapter != nil {
		chapterCompleted = upsertChapterProgress(db, userID, chapter.ID)

		// Resolve course and recompute its completion from chapter state
		course := parentCourseOf(chapter)
		if course != nil {
			courseCompleted = upsertCourseProgress(db, userID, course.ID)
		}
	}

	return chapterCompleted, courseCompleted
}

// upsertChapterProgress recomputes chapter completion and persists it.
// CompletedAt is stamped exactly once, on the incomplete -> complete
// transition; a later regression never clears the flag or the timestamp.
func upsertChapterProgress(db *gorm.DB, userID uint, chapterID uint) bool {
	completed := isChapterComplete(userID, chapterID)

	var cp courseModels.ChapterProgress
	if err := db.Where("user_id = ? AND chapter_id = ?", userID, chapterID).First(&cp).Error; err != nil {
		cp = courseModels.ChapterProgress{UserID: userID, ChapterID: chapterID}
	}

	// Sticky completion: once earned, always earned
	if cp.Completed {
		completed = true
	}

	cp.Completed = completed
	if completed && cp.CompletedAt == nil {
		now := time.Now()
		cp.CompletedAt = &now
	}
	db.Save(&cp)

	return completed
}

// upsertCourseProgress applies the same stamp rule one level up.
func upsertCourseProgress(db *gorm.DB, userID uint, courseID uint) bool {
	completed := isCourseComplete(userID, courseID)

	var cp courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error; err != nil {
		cp = courseModels.CourseProgress{UserID: userID, CourseID: courseID}
	}

	if cp.Completed {
		completed = true
	}

	cp.Completed = completed
	if completed && cp.CompletedAt == nil {
		now := time.Now()
		cp.CompletedAt = &now
	}
	db.Save(&cp)

	return completed
}
