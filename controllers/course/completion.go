package controllers

import (
	"github.com/openvisualizationacademy/ova-site/database"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"
)

// isChapterComplete reports whether every live segment under the chapter has
// been watched to 100% by the user. A chapter with no live segments is never
// complete. Pure read, no rows are written.
func isChapterComplete(userID uint, chapterID uint) bool {
	var segmentIDs []uint
	database.Database.Db.Model(&courseModels.Segment{}).
		Where("chapter_id = ? AND is_deleted = ? AND is_published = ?", chapterID, false, true).
		Pluck("id", &segmentIDs)

	if len(segmentIDs) == 0 {
		return false
	}

	var completedSegments int64
	database.Database.Db.Model(&courseModels.SegmentProgress{}).
		Where("user_id = ? AND segment_id IN ? AND percent_watched >= ? AND is_deleted = ?", userID, segmentIDs, 100.0, false).
		Count(&completedSegments)

	return completedSegments == int64(len(segmentIDs))
}

// isCourseComplete reports whether every live chapter of the course is
// complete for the user. A course with no live chapters is never complete.
// Evaluated fresh on every call since segment progress can regress.
func isCourseComplete(userID uint, courseID uint) bool {
	chapters := liveChaptersOf(courseID)
	if len(chapters) == 0 {
		return false
	}

	for _, ch := range chapters {
		if !isChapterComplete(userID, ch.ID) {
			return false
		}
	}

	return true
}
