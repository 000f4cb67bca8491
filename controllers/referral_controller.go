package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/services"
	"github.com/methodshub/backend/utils"
)

// ReferralController exposes the shareable invite code, referral stats and
// the points ledger.
type ReferralController struct {
	db *gorm.DB
}

// NewReferralController creates a ReferralController.
func NewReferralController(db *gorm.DB) *ReferralController {
	return &ReferralController{db: db}
}

// Code returns the caller's shareable referral code.
func (r *ReferralController) Code(ctx *gin.Context) {
	userID := currentUserID(ctx)
	utils.Success(ctx, gin.H{"referral_code": services.EncodeReferralCode(userID)})
}

// Stats returns how many signups the caller referred and who they are.
func (r *ReferralController) Stats(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var referrals []models.Referral
	if err := r.db.Where("referrer_id = ?", userID).Order("created_at DESC").
		Find(&referrals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to retrieve referrals")
		return
	}

	referredIDs := make([]uint, 0, len(referrals))
	for _, ref := range referrals {
		referredIDs = append(referredIDs, ref.ReferredUserID)
	}

	type referredUser struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	referred := []referredUser{}
	if len(referredIDs) > 0 {
		var users []models.User
		if err := r.db.Where("id IN ?", referredIDs).Find(&users).Error; err == nil {
			for _, u := range users {
				referred = append(referred, referredUser{ID: u.ID, Username: u.Username})
			}
		}
	}

	utils.Success(ctx, gin.H{
		"total_referrals": len(referrals),
		"referred_users":  referred,
	})
}

// Points returns the caller's points balance and lifetime total.
func (r *ReferralController) Points(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var row models.ReferralPoints
	if err := r.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		// No awards yet: zero balance, not an error.
		utils.Success(ctx, gin.H{"points": 0, "lifetime_points": 0})
		return
	}

	utils.Success(ctx, gin.H{
		"points":          row.Points,
		"lifetime_points": row.LifetimePoints,
	})
}
