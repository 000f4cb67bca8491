package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/utils"
)

// NotificationController serves the dashboard notification center.
type NotificationController struct {
	db *gorm.DB
}

// NewNotificationController creates a NotificationController.
func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

// List returns the user's notifications, newest first, capped at 100.
func (n *NotificationController) List(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var items []models.Notification
	if err := n.db.Where("user_id = ?", userID).Order("created_at DESC").
		Limit(100).Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to retrieve notifications")
		return
	}

	utils.Success(ctx, items)
}

// UnreadCount returns the badge counter.
func (n *NotificationController) UnreadCount(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var count int64
	if err := n.db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to count notifications")
		return
	}

	utils.Success(ctx, gin.H{"unread": count})
}

// MarkRead marks one notification as read.
func (n *NotificationController) MarkRead(ctx *gin.Context) {
	userID := currentUserID(ctx)

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid notification id")
		return
	}

	res := n.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50047, "failed to update notification")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40430, "notification not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "marked read"})
}

// MarkAllRead clears the unread state for every notification of the user.
func (n *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID := currentUserID(ctx)

	if err := n.db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50048, "failed to update notifications")
		return
	}

	utils.Success(ctx, gin.H{"message": "all marked read"})
}
