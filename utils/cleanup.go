package utils

import (
	"time"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/models"
)

// StartPageViewPruner launches a background goroutine that periodically deletes
// page view rows older than the configured retention window. Best-effort; failures are logged.
func StartPageViewPruner(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			days := config.Get().PageViewRetentionDays
			if days <= 0 {
				continue
			}
			cutoff := time.Now().AddDate(0, 0, -days)
			res := db.Where("date < ?", cutoff).Delete(&models.PageView{})
			if res.Error != nil {
				if Sugar != nil {
					Sugar.Warnf("pageview prune failed: %v", res.Error)
				}
				continue
			}
			if res.RowsAffected > 0 && Sugar != nil {
				Sugar.Infof("pruned %d stale pageview rows", res.RowsAffected)
			}
		}
	}()
}
