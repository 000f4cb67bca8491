package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/services"
	"github.com/methodshub/backend/utils"
)

// StreakController exposes the persisted streak counters and the reminder
// status widget.
type StreakController struct {
	db *gorm.DB
}

// NewStreakController creates a StreakController.
func NewStreakController(db *gorm.DB) *StreakController {
	return &StreakController{db: db}
}

func (s *StreakController) load(ctx *gin.Context, userID uint) (models.Streak, bool) {
	var row models.Streak
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to retrieve streak")
		return row, false
	}
	return row, true
}

// Get returns the user's streak counters. A user with no entries yet gets
// zeros, not a 404. A streak lapsed two or more days reads as zero.
func (s *StreakController) Get(ctx *gin.Context) {
	userID := currentUserID(ctx)
	row, ok := s.load(ctx, userID)
	if !ok {
		return
	}

	needsReminder, _ := services.ReminderStatus(streakState(row), time.Now())
	current := row.CurrentStreak
	if needsReminder {
		current = 0
	}

	utils.Success(ctx, gin.H{
		"current_streak":  current,
		"longest_streak":  row.LongestStreak,
		"last_entry_date": row.LastEntryDate,
	})
}

// Status returns whether the user should be reminded to log an entry and how
// many days they have missed.
func (s *StreakController) Status(ctx *gin.Context) {
	userID := currentUserID(ctx)
	row, ok := s.load(ctx, userID)
	if !ok {
		return
	}

	needsReminder, daysMissed := services.ReminderStatus(streakState(row), time.Now())
	utils.Success(ctx, gin.H{
		"needs_reminder": needsReminder,
		"days_missed":    daysMissed,
	})
}

func streakState(row models.Streak) services.StreakState {
	return services.StreakState{
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
		LastEntryDate: row.LastEntryDate,
	}
}
