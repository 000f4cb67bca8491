package services

import (
	"time"

	"github.com/methodshub/backend/models"
)

// DayTotal is one calendar day's summed amount.
type DayTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// EarningsSummary holds the derived period totals for a user's entries.
// CurrentStreak is filled by the caller from the persisted streak row so the
// summary and the streak widget always agree on "today".
type EarningsSummary struct {
	TotalLifetime float64   `json:"total_lifetime"`
	TotalYearly   float64   `json:"total_yearly"`
	TotalMonthly  float64   `json:"total_monthly"`
	TotalDaily    float64   `json:"total_daily"`
	DailyAverage  float64   `json:"daily_average"`
	BestDay       *DayTotal `json:"best_day"`
	CurrentStreak int       `json:"current_streak"`
	TotalEntries  int       `json:"total_entries"`
}

// ComputeSummary derives period totals from the full entry set relative to
// asOf. Pure and deterministic; no I/O.
func ComputeSummary(entries []models.DailyEarning, asOf time.Time) EarningsSummary {
	day := DayOf(asOf)
	year, month := day.Year(), day.Month()
	today := day.Format("2006-01-02")

	var s EarningsSummary
	dailyTotals := map[string]float64{}

	for _, e := range entries {
		entryDay := DayOf(e.EntryDate)
		dateStr := entryDay.Format("2006-01-02")

		s.TotalLifetime += e.Amount
		if entryDay.Year() == year {
			s.TotalYearly += e.Amount
			if entryDay.Month() == month {
				s.TotalMonthly += e.Amount
			}
		}
		if dateStr == today {
			s.TotalDaily += e.Amount
		}
		dailyTotals[dateStr] += e.Amount
	}

	s.TotalEntries = len(entries)
	if len(dailyTotals) > 0 {
		s.DailyAverage = s.TotalLifetime / float64(len(dailyTotals))
	}

	// Best day: highest daily total; on a tie the first date encountered in
	// entry order wins (implementation-defined, not contractual).
	for _, e := range entries {
		dateStr := DayOf(e.EntryDate).Format("2006-01-02")
		amount := dailyTotals[dateStr]
		if s.BestDay == nil || amount > s.BestDay.Amount {
			s.BestDay = &DayTotal{Date: dateStr, Amount: amount}
		}
	}

	return s
}
