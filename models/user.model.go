package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string `gorm:"default:''"`
	Email           string `gorm:"unique;not null"`
	Role            string `gorm:"default:'USER'"` // USER, ADMIN
	IsActive        bool   `gorm:"default:false"`  // activated on first verified login code
	IsEmailVerified bool   `gorm:"default:false"`
	LastLogin       time.Time
	IsDeleted       bool `gorm:"default:false"`
}
