package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/utils"
)

// SubscriptionController is the read-side of the billing integration. Plan
// changes land in the table from outside this service.
type SubscriptionController struct {
	db *gorm.DB
}

// NewSubscriptionController creates a SubscriptionController.
func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{db: db}
}

// Get returns the caller's subscription. Users without a row are on the free
// plan.
func (s *SubscriptionController) Get(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var sub models.Subscription
	err := s.db.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Success(ctx, gin.H{
				"plan_type":  models.PlanFree,
				"status":     models.SubscriptionActive,
				"is_premium": false,
			})
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to retrieve subscription")
		return
	}

	utils.Success(ctx, gin.H{
		"plan_type":          sub.PlanType,
		"status":             sub.Status,
		"current_period_end": sub.CurrentPeriodEnd,
		"is_premium":         sub.IsPremiumActive(),
	})
}
