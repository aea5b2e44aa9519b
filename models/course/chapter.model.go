package course

import "gorm.io/gorm"

// Chapter is an ordered group of segments within a course
type Chapter struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"index"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Chapter order in course
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
