package models

import "time"

// Method difficulty levels accepted on create/update.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Method describes a recurring earning opportunity owned by a user.
// Public methods are discoverable by everyone on the explore page.
type Method struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"size:32;default:'Other'" json:"category"`
	Earnings     string    `gorm:"size:64" json:"earnings"`      // free text like "$5-$15"
	Difficulty   string    `gorm:"size:16" json:"difficulty"`    // Easy / Medium / Hard
	TimeRequired string    `gorm:"size:64" json:"time_required"` // free text like "30 min", parsed by the scheduler
	Link         string    `gorm:"size:1024" json:"link"`
	ReferralCode string    `gorm:"size:255" json:"referral_code"`
	IconURL      string    `gorm:"size:512" json:"icon_url"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsPublic     bool      `gorm:"default:false;index" json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
