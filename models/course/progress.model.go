package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SegmentProgress tracks how much of a segment a user has watched.
// One row per (user, segment); each watch event overwrites the percent.
type SegmentProgress struct {
	gorm.Model
	UserID         uint    `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_segment"`
	SegmentID      uint    `json:"segment_id" gorm:"index;not null;uniqueIndex:idx_user_segment"`
	PercentWatched float64 `json:"percent_watched" gorm:"default:0"` // clamped to [0,100]
	IsDeleted      bool    `gorm:"default:false"`
}

// ChapterProgress marks a chapter complete for a user. CompletedAt is
// stamped once on the incomplete -> complete transition and never cleared.
type ChapterProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_chapter"`
	ChapterID   uint       `json:"chapter_id" gorm:"index;not null;uniqueIndex:idx_user_chapter"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}

// CourseProgress marks a course complete for a user, same lifecycle as
// ChapterProgress.
type CourseProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID    uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}

// QuizProgress stores the latest graded submission for a (user, quiz) pair.
// AnswersSnapshot holds {"answers": {qid: choiceID}, "results": {qid: bool}}
// keyed by decimal question-id strings so the page can be rehydrated later.
type QuizProgress struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_quiz"`
	QuizID          uint           `json:"quiz_id" gorm:"index;not null;uniqueIndex:idx_user_quiz"`
	Completed       bool           `json:"completed" gorm:"default:false"`
	Score           int            `json:"score" gorm:"default:0"` // integer percent 0-100
	AnswersSnapshot datatypes.JSON `json:"answers_snapshot"`
	IsDeleted       bool           `gorm:"default:false"`
}
