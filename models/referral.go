package models

import "time"

// Referral links a referrer to a referred signup. The unique index on the
// referred user guarantees at most one referral credit per account.
type Referral struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReferrerID     uint      `gorm:"index;not null" json:"referrer_id"`
	ReferredUserID uint      `gorm:"uniqueIndex;not null" json:"referred_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReferralPoints is the additive per-user points ledger. lifetime_points is
// monotonically non-decreasing; there is no spending path.
type ReferralPoints struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Points         int       `gorm:"default:0" json:"points"`
	LifetimePoints int       `gorm:"default:0" json:"lifetime_points"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
