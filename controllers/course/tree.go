package controllers

import (
	"github.com/openvisualizationacademy/ova-site/database"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"
)

// Content tree read helpers. "Live" means published and not soft-deleted;
// draft nodes never count toward completion or navigation.

func liveChaptersOf(courseID uint) []courseModels.Chapter {
	var chapters []courseModels.Chapter
	database.Database.Db.
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").
		Find(&chapters)
	return chapters
}

func liveSegmentsOf(chapterID uint) []courseModels.Segment {
	var segments []courseModels.Segment
	database.Database.Db.
		Where("chapter_id = ? AND is_deleted = ? AND is_published = ?", chapterID, false, true).
		Order("order_index asc").
		Find(&segments)
	return segments
}

// parentChapterOf resolves a segment's chapter. Returns nil when the chapter
// is missing or not live.
func parentChapterOf(segment *courseModels.Segment) *courseModels.Chapter {
	var chapter courseModels.Chapter
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", segment.ChapterID, false).
		First(&chapter).Error
	if err != nil {
		return nil
	}
	return &chapter
}

// parentCourseOf resolves a chapter's course. Returns nil when the course is
// missing or soft-deleted.
func parentCourseOf(chapter *courseModels.Chapter) *courseModels.Course {
	var course courseModels.Course
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", chapter.CourseID, false).
		First(&course).Error
	if err != nil {
		return nil
	}
	return &course
}

// adjacentSegment returns the next (direction +1) or previous (direction -1)
// live segment, crossing into the neighbouring chapter when the current one
// runs out. Returns nil at either end of the course.
func adjacentSegment(segment *courseModels.Segment, direction int) *courseModels.Segment {
	db := database.Database.Db

	// 1. Try sibling segments within the same chapter
	var sibling courseModels.Segment
	query := db.Where("chapter_id = ? AND is_deleted = ? AND is_published = ?", segment.ChapterID, false, true)
	if direction > 0 {
		query = query.Where("order_index > ?", segment.OrderIndex).Order("order_index asc")
	} else {
		query = query.Where("order_index < ?", segment.OrderIndex).Order("order_index desc")
	}
	if err := query.First(&sibling).Error; err == nil {
		return &sibling
	}

	// 2. No siblings -> look in the next/previous chapter
	chapter := parentChapterOf(segment)
	if chapter == nil {
		return nil
	}

	var adjacentChapter courseModels.Chapter
	query = db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", chapter.CourseID, false, true)
	if direction > 0 {
		query = query.Where("order_index > ?", chapter.OrderIndex).Order("order_index asc")
	} else {
		query = query.Where("order_index < ?", chapter.OrderIndex).Order("order_index desc")
	}
	if err := query.First(&adjacentChapter).Error; err != nil {
		return nil
	}

	// 3. First segment of the next chapter, or last segment of the previous one
	var target courseModels.Segment
	query = db.Where("chapter_id = ? AND is_deleted = ? AND is_published = ?", adjacentChapter.ID, false, true)
	if direction > 0 {
		query = query.Order("order_index asc")
	} else {
		query = query.Order("order_index desc")
	}
	if err := query.First(&target).Error; err != nil {
		return nil
	}
	return &target
}
