package utils

import (
	"log"
	"time"

	"github.com/openvisualizationacademy/ova-site/database"
	"github.com/openvisualizationacademy/ova-site/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// StartLoginCodeCleanupScheduler runs a nightly job that removes expired
// login codes and users who requested a code but never verified one.
func StartLoginCodeCleanupScheduler() {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		CleanupLoginCodes()
	})
	if err != nil {
		log.Printf("Failed to schedule login code cleanup: %v", err)
		return
	}

	c.Start()
	log.Println("Login code cleanup scheduler started.")
}

// CleanupLoginCodes deletes codes that expired before today and purges
// auto-created accounts that never completed a login.
func CleanupLoginCodes() {
	db := database.Database.Db
	cutoff := now.BeginningOfDay()

	res := db.Where("expires_at < ? AND is_used = ?", cutoff, false).Delete(&models.LoginCode{})
	if res.Error != nil {
		log.Printf("Login code cleanup failed: %v", res.Error)
		return
	}
	log.Printf("Login code cleanup removed %d expired codes.", res.RowsAffected)

	// Users auto-created for a code they never used, older than a week
	staleBefore := cutoff.Add(-7 * 24 * time.Hour)
	res = db.Model(&models.User{}).
		Where("is_active = ? AND is_deleted = ? AND created_at < ?", false, false, staleBefore).
		Update("is_deleted", true)
	if res.Error != nil {
		log.Printf("Stale user cleanup failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Stale user cleanup removed %d never-activated accounts.", res.RowsAffected)
	}
}
