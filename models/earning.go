package models

import "time"

// DailyEarning is one logged income amount for one method on one calendar day.
// The composite unique index makes duplicate (user, method, date) inserts fail
// at the store instead of racing in application code.
type DailyEarning struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;index:idx_earning_user_method_date,unique;not null" json:"user_id"`
	MethodID  uint      `gorm:"index:idx_earning_user_method_date,unique;not null" json:"method_id"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	EntryDate time.Time `gorm:"index:idx_earning_user_method_date,unique;type:date;not null" json:"entry_date"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Method    Method    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"method"`
}
