package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginCode is a one-time email login code. Users sign in by requesting a
// code instead of keeping a password.
type LoginCode struct {
	gorm.Model
	UserID    uint      `gorm:"not null" json:"user_id"`
	Email     string    `gorm:"size:100;index" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"code"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	IsDeleted bool      `gorm:"default:false"`
}
