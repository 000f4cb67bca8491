package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/services"
	"github.com/methodshub/backend/utils"
)

// TaskController derives the daily task queue from active methods and today's
// completions.
type TaskController struct {
	db *gorm.DB
}

// NewTaskController creates a TaskController.
func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{db: db}
}

// Available returns the user's active methods ordered by availability:
// off-cooldown tasks first (quickest, then best paying), cooling-down tasks
// after, soonest first.
func (t *TaskController) Available(ctx *gin.Context) {
	userID := currentUserID(ctx)
	now := time.Now()

	var methods []models.Method
	if err := t.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&methods).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to retrieve methods")
		return
	}

	dayStart := services.DayOf(now)
	var completions []models.MethodCompletion
	if err := t.db.Where("user_id = ? AND completed_at >= ?", userID, dayStart).
		Find(&completions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to retrieve completions")
		return
	}

	utils.Success(ctx, services.ComputeAvailableTasks(methods, completions, now))
}

// Complete records that the user performed a method now, starting its
// cooldown.
func (t *TaskController) Complete(ctx *gin.Context) {
	userID := currentUserID(ctx)

	methodID, err := strconv.Atoi(ctx.Param("methodId"))
	if err != nil || methodID <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid method id")
		return
	}

	var method models.Method
	if err := t.db.Where("id = ? AND user_id = ?", methodID, userID).First(&method).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40421, "method not found")
		return
	}

	completion := models.MethodCompletion{
		UserID:      userID,
		MethodID:    method.ID,
		CompletedAt: time.Now(),
	}
	if err := t.db.Create(&completion).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to record completion")
		return
	}

	utils.Success(ctx, completion)
}
