package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/methodshub/backend/config"
	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/utils"
)

// MetaController serves static vocabulary the frontend renders selects from.
type MetaController struct{}

func NewMetaController() *MetaController { return &MetaController{} }

// GetCategories returns method categories and difficulty levels.
func (c *MetaController) GetCategories(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"categories": methodCategories,
		"difficulties": []string{
			models.DifficultyEasy,
			models.DifficultyMedium,
			models.DifficultyHard,
		},
	})
}

// GetPoints returns the points award schedule.
func (c *MetaController) GetPoints(ctx *gin.Context) {
	points := config.Get().Points
	utils.Success(ctx, gin.H{
		"referral_signup":     points.ReferralSignup,
		"daily_earning":       points.DailyEarning,
		"streak_7_days":       points.Streak7Days,
		"streak_30_days":      points.Streak30Days,
		"streak_100_days":     points.Streak100Days,
		"monthly_volume_100":  points.MonthlyVolume100,
		"monthly_volume_500":  points.MonthlyVolume500,
		"monthly_volume_1000": points.MonthlyVolume1000,
	})
}
