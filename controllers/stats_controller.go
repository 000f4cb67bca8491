package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/utils"
)

// StatsController provides public aggregate counters for the landing page.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate usage statistics.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var methodCount int64
	var publicMethodCount int64
	var entryCount int64
	var dailyActive int64

	// Each counter falls back to 0 instead of failing the whole endpoint.
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Method{}).Count(&methodCount).Error; err != nil {
		methodCount = 0
	}
	if err := s.db.Model(&models.Method{}).Where("is_public = ?", true).Count(&publicMethodCount).Error; err != nil {
		publicMethodCount = 0
	}
	if err := s.db.Model(&models.DailyEarning{}).Count(&entryCount).Error; err != nil {
		entryCount = 0
	}

	// Daily active (PV-based): sum of today's page views across all paths.
	// String date equality avoids timezone/type mismatches with the DATE column.
	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyActive).Error; err != nil {
		dailyActive = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":          userCount,
		"method_count":        methodCount,
		"public_method_count": publicMethodCount,
		"entry_count":         entryCount,
		"daily_active_count":  dailyActive,
	})
}
