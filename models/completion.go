package models

import "time"

// MethodCompletion records that a user performed a method at a point in time.
// Multiple completions per day are allowed; the scheduler only looks at the
// most recent one within the current day.
type MethodCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	MethodID    uint      `gorm:"index;not null" json:"method_id"`
	CompletedAt time.Time `gorm:"index;not null" json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}
