package controllers

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/utils"
)

// awardPoints adds points to a user's ledger, creating the row on first award.
// Lifetime points only ever grow.
func awardPoints(db *gorm.DB, userID uint, points int) error {
	if points <= 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":          gorm.Expr("points + ?", points),
			"lifetime_points": gorm.Expr("lifetime_points + ?", points),
			"updated_at":      time.Now(),
		}),
	}).Create(&models.ReferralPoints{
		UserID:         userID,
		Points:         points,
		LifetimePoints: points,
	}).Error
}

// notify inserts a dashboard notification; failures are logged, never fatal.
func notify(db *gorm.DB, userID uint, title, message, typ string) {
	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if err := db.Create(&n).Error; err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("notification insert failed user=%d: %v", userID, err)
	}
}
