package models

import "time"

// Subscription plan and status values. Payment capture happens outside this
// service; rows here only gate premium features like public method publishing.
const (
	PlanFree    = "free"
	PlanPremium = "premium"

	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// Subscription is the read-side view of a user's paid tier.
type Subscription struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	PlanType         string     `gorm:"size:16;default:'free'" json:"plan_type"`
	Status           string     `gorm:"size:16;default:'active'" json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsPremiumActive reports whether the subscription currently unlocks premium
// features.
func (s *Subscription) IsPremiumActive() bool {
	return s != nil && s.PlanType == PlanPremium && s.Status == SubscriptionActive
}
