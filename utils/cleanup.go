package utils

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/methodshub/backend/models"
)

// StartIconCleaner periodically removes uploaded method icons that passed
// their expiration without being claimed by a saved method. Runs until the
// process exits.
func StartIconCleaner(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			sweepExpiredIcons(db)
		}
	}()
}

func sweepExpiredIcons(db *gorm.DB) {
	var expired []models.UploadedFile
	if err := db.Where("expire_at < ?", time.Now()).
		Limit(500).Find(&expired).Error; err != nil {
		if Sugar != nil {
			Sugar.Warnf("icon sweep query failed: %v", err)
		}
		return
	}

	removed := 0
	for _, uf := range expired {
		path := filepath.Clean(uf.FilePath)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			if Sugar != nil {
				Sugar.Warnf("icon sweep remove %s: %v", path, err)
			}
			continue
		}
		if err := db.Delete(&models.UploadedFile{}, uf.ID).Error; err != nil {
			continue
		}
		removed++
	}
	if removed > 0 && Sugar != nil {
		Sugar.Infof("icon sweep removed %d expired icons", removed)
	}
}
