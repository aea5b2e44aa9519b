package course

import "gorm.io/gorm"

// Quiz is an embedded quiz owned by a segment. A segment has at most one
// quiz surfaced to learners.
type Quiz struct {
	gorm.Model
	SegmentID uint   `json:"segment_id" gorm:"index;not null"`
	Title     string `json:"title"`
	IsDeleted bool   `gorm:"default:false"`
}

// Question is a single multiple-choice question within a quiz
type Question struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// Choice is one answer option. Exactly one choice per question should be
// marked correct; that is an authoring rule, grading does not enforce it.
type Choice struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
