package models

import "time"

// Streak is the per-user consecutive-day counter, updated once per distinct
// entry date. longest_streak never drops below current_streak.
type Streak struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastEntryDate *time.Time `gorm:"type:date" json:"last_entry_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
