package course

import "gorm.io/gorm"

// Segment is the smallest content unit, one video lesson within a chapter
type Segment struct {
	gorm.Model
	ChapterID   uint   `json:"chapter_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"index"`
	VideoURL    string `json:"video_url"`
	Duration    int64  `json:"duration" gorm:"default:0"` // duration in seconds
	Width       int    `json:"width" gorm:"default:0"`
	Height      int    `json:"height" gorm:"default:0"`
	AspectRatio float64 `json:"aspect_ratio" gorm:"default:0"` // derived, (height/width)*100
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Segment order in chapter
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// BeforeSave keeps the aspect ratio in sync with the video dimensions
func (s *Segment) BeforeSave(tx *gorm.DB) error {
	if s.Width > 0 && s.Height > 0 {
		s.AspectRatio = float64(s.Height) / float64(s.Width) * 100
	} else {
		s.AspectRatio = 0
	}
	return nil
}
