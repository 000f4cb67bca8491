package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/config"
	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/services"
	"github.com/methodshub/backend/utils"
)

// EarningController manages daily income entries and the derived summary and
// analytics views.
type EarningController struct {
	db *gorm.DB
}

// NewEarningController creates an EarningController.
func NewEarningController(db *gorm.DB) *EarningController {
	return &EarningController{db: db}
}

// List returns the user's entries, newest first. Optional start/end query
// params (YYYY-MM-DD, inclusive) restrict the range.
func (e *EarningController) List(ctx *gin.Context) {
	userID := currentUserID(ctx)

	q := e.db.Preload("Method").Where("user_id = ?", userID)
	if v := strings.TrimSpace(ctx.Query("start")); v != "" {
		if !services.ValidDate(v) {
			utils.Error(ctx, http.StatusBadRequest, 40030, "invalid start date (use YYYY-MM-DD)")
			return
		}
		q = q.Where("entry_date >= ?", v)
	}
	if v := strings.TrimSpace(ctx.Query("end")); v != "" {
		if !services.ValidDate(v) {
			utils.Error(ctx, http.StatusBadRequest, 40031, "invalid end date (use YYYY-MM-DD)")
			return
		}
		q = q.Where("entry_date <= ?", v)
	}

	var entries []models.DailyEarning
	if err := q.Order("entry_date DESC, id DESC").Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to retrieve entries")
		return
	}

	utils.Success(ctx, entries)
}

type earningRequest struct {
	MethodID  uint    `json:"method_id" binding:"required"`
	Amount    float64 `json:"amount"`
	EntryDate string  `json:"entry_date" binding:"required"`
	Notes     string  `json:"notes"`
}

// Create logs one amount for one method on one day. A duplicate
// (method, date) pair is rejected; success advances the streak and awards
// points.
func (e *EarningController) Create(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var req earningRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}
	if !services.ValidDate(req.EntryDate) {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid entry date (use YYYY-MM-DD)")
		return
	}
	if req.Amount < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40034, "amount must not be negative")
		return
	}

	var method models.Method
	if err := e.db.Where("id = ? AND user_id = ?", req.MethodID, userID).First(&method).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40421, "method not found")
		return
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid entry date (use YYYY-MM-DD)")
		return
	}
	entry := models.DailyEarning{
		UserID:    userID,
		MethodID:  method.ID,
		Amount:    req.Amount,
		EntryDate: entryDate,
		Notes:     utils.Sanitize(req.Notes),
	}

	prevMonthTotal := e.monthTotal(userID, entryDate)

	if err := e.db.Create(&entry).Error; err != nil {
		if isDuplicateKey(err) {
			utils.Error(ctx, http.StatusConflict, 40920, "an entry for this method and date already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to create entry")
		return
	}

	streak := e.advanceStreak(userID, entryDate)
	e.awardEntryPoints(userID, prevMonthTotal, prevMonthTotal+req.Amount)

	entry.Method = method
	utils.Success(ctx, gin.H{"entry": entry, "streak": streak})
}

// Update edits an entry's amount and notes. Dates and methods are fixed;
// streak state never changes on edit.
func (e *EarningController) Update(ctx *gin.Context) {
	userID := currentUserID(ctx)
	entry, ok := e.ownedEntry(ctx, userID)
	if !ok {
		return
	}

	var req struct {
		Amount *float64 `json:"amount"`
		Notes  *string  `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}

	if req.Amount != nil {
		if *req.Amount < 0 {
			utils.Error(ctx, http.StatusBadRequest, 40034, "amount must not be negative")
			return
		}
		entry.Amount = *req.Amount
	}
	if req.Notes != nil {
		entry.Notes = utils.Sanitize(*req.Notes)
	}

	if err := e.db.Save(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to update entry")
		return
	}

	utils.Success(ctx, entry)
}

// Delete removes an entry. Streak history is not rewritten.
func (e *EarningController) Delete(ctx *gin.Context) {
	userID := currentUserID(ctx)
	entry, ok := e.ownedEntry(ctx, userID)
	if !ok {
		return
	}

	if err := e.db.Delete(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to delete entry")
		return
	}

	utils.Success(ctx, gin.H{"message": "entry deleted"})
}

// Summary returns lifetime/period totals plus the live streak counter.
func (e *EarningController) Summary(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var entries []models.DailyEarning
	if err := e.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to retrieve entries")
		return
	}

	summary := services.ComputeSummary(entries, time.Now())
	summary.CurrentStreak = e.effectiveStreak(userID, time.Now())

	utils.Success(ctx, summary)
}

// Analytics returns by-method and by-category breakdowns plus the trailing
// 30-day series and amount distribution.
func (e *EarningController) Analytics(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var entries []models.DailyEarning
	if err := e.db.Preload("Method").Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to retrieve entries")
		return
	}

	utils.Success(ctx, services.ComputeAnalytics(entries, time.Now()))
}

// advanceStreak applies a new entry date to the persisted streak row and
// handles milestone awards. Returns the row after the update.
func (e *EarningController) advanceStreak(userID uint, entryDate time.Time) models.Streak {
	var row models.Streak
	err := e.db.Where("user_id = ?", userID).First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("streak load failed user=%d: %v", userID, err)
		}
		return row
	}
	row.UserID = userID

	state, changed := services.ApplyEntryDate(services.StreakState{
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
		LastEntryDate: row.LastEntryDate,
	}, entryDate)
	if !changed {
		return row
	}

	row.CurrentStreak = state.CurrentStreak
	row.LongestStreak = state.LongestStreak
	row.LastEntryDate = state.LastEntryDate
	if err := e.db.Save(&row).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("streak save failed user=%d: %v", userID, err)
		}
		return row
	}

	points := config.Get().Points
	if bonus := points.StreakMilestoneAward(row.CurrentStreak); bonus > 0 {
		if err := awardPoints(e.db, userID, bonus); err == nil {
			notify(e.db, userID, "Streak milestone",
				fmt.Sprintf("%d-day streak! You earned %d bonus points.", row.CurrentStreak, bonus),
				models.NotificationSuccess)
		}
	}

	return row
}

// awardEntryPoints grants the per-entry point and any monthly volume bonus
// crossed by this entry.
func (e *EarningController) awardEntryPoints(userID uint, prevMonthTotal, newMonthTotal float64) {
	points := config.Get().Points

	total := points.DailyEarning
	if bonus := points.MonthlyVolumeAward(prevMonthTotal, newMonthTotal); bonus > 0 {
		total += bonus
		notify(e.db, userID, "Monthly volume bonus",
			fmt.Sprintf("Your earnings this month passed a milestone. %d bonus points awarded.", bonus),
			models.NotificationSuccess)
	}
	if err := awardPoints(e.db, userID, total); err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("entry points award failed user=%d: %v", userID, err)
	}
}

// monthTotal sums the user's entries within the calendar month of day.
func (e *EarningController) monthTotal(userID uint, day time.Time) float64 {
	d := services.DayOf(day)
	monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var total float64
	e.db.Model(&models.DailyEarning{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?",
			userID, monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02")).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// effectiveStreak reads the persisted streak, treating a lapse of two or more
// days as zero so the dashboard never shows a stale run.
func (e *EarningController) effectiveStreak(userID uint, asOf time.Time) int {
	var row models.Streak
	if err := e.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		return 0
	}
	needsReminder, _ := services.ReminderStatus(services.StreakState{
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
		LastEntryDate: row.LastEntryDate,
	}, asOf)
	if needsReminder {
		return 0
	}
	return row.CurrentStreak
}

func (e *EarningController) ownedEntry(ctx *gin.Context, userID uint) (models.DailyEarning, bool) {
	var entry models.DailyEarning
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40035, "invalid entry id")
		return entry, false
	}
	if err := e.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40422, "entry not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load entry")
		}
		return entry, false
	}
	return entry, true
}

// isDuplicateKey detects a unique constraint violation from the MySQL driver.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
