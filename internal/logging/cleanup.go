package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/stratacloud/careers-backend/internal/models"
)

// purgeFunc deletes rows older than cutoff and reports how many went.
type purgeFunc func(cutoff time.Time) (int64, error)

// StartCleanup trims system_logs to the last retentionDays, once at start and
// then daily until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, done <-chan struct{}) {
	purge := func(cutoff time.Time) (int64, error) {
		res := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
		return res.RowsAffected, res.Error
	}
	go runCleanup(purge, retentionDays, 24*time.Hour, time.Now, done)
}

func runCleanup(purge purgeFunc, retentionDays int, every time.Duration, now func() time.Time, done <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		cutoff := now().AddDate(0, 0, -retentionDays)
		if n, err := purge(cutoff); err != nil {
			slog.Error("log cleanup failed", "error", err)
		} else if n > 0 {
			slog.Info("log cleanup completed", "deleted", n, "retention_days", retentionDays)
		}

		select {
		case <-ticker.C:
		case <-done:
			return
		}
	}
}
