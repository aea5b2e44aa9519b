package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is the top-level content container, an ordered group of chapters
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"index"`
	Description string `json:"description" gorm:"type:text"`
	Duration    int64  `json:"duration" gorm:"default:0"` // duration in minutes
	ImageURL    string `json:"image_url"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`

	// Coming-soon gating: a release label shown instead of the content, plus
	// an allow-list of emails that may enter early. Access control only, the
	// completion logic never looks at these.
	ReleaseLabel  string         `json:"release_label"`
	AllowedEmails datatypes.JSON `json:"allowed_emails"` // JSON array of emails
}
