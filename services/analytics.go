package services

import (
	"sort"
	"time"

	"github.com/methodshub/backend/models"
)

// MethodBreakdown aggregates entries for one method.
type MethodBreakdown struct {
	MethodID    uint    `json:"method_id"`
	MethodTitle string  `json:"method_title"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

// CategoryBreakdown aggregates entries for one method category.
type CategoryBreakdown struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// RangeCount is one bucket of the daily-total histogram.
type RangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// AnalyticsData is the per-user analytics breakdown rendered on the analytics
// page. Last30Days is sparse: days without entries get no row, the chart
// consumer pads zeros.
type AnalyticsData struct {
	ByMethod           []MethodBreakdown   `json:"by_method"`
	ByCategory         []CategoryBreakdown `json:"by_category"`
	Last30Days         []DayTotal          `json:"last_30_days"`
	AmountDistribution []RangeCount        `json:"amount_distribution"`
}

var histogramBuckets = []struct {
	label    string
	min, max float64
}{
	{"$0-$10", 0, 10},
	{"$10-$25", 10, 25},
	{"$25-$50", 25, 50},
	{"$50-$100", 50, 100},
	{"$100+", 100, -1},
}

// ComputeAnalytics groups entries (with their joined Method) by method,
// category and recent day. Orphaned method references fall back to "Unknown" /
// "other" instead of failing the whole aggregation. Single pass per grouping,
// ordered by first encounter so output is deterministic.
func ComputeAnalytics(entries []models.DailyEarning, asOf time.Time) AnalyticsData {
	data := AnalyticsData{
		ByMethod:   []MethodBreakdown{},
		ByCategory: []CategoryBreakdown{},
		Last30Days: []DayTotal{},
	}

	methodIdx := map[uint]int{}
	categoryIdx := map[string]int{}
	for _, e := range entries {
		title := e.Method.Title
		if e.Method.ID == 0 || title == "" {
			title = "Unknown"
		}
		if i, ok := methodIdx[e.MethodID]; ok {
			data.ByMethod[i].Total += e.Amount
			data.ByMethod[i].Count++
		} else {
			methodIdx[e.MethodID] = len(data.ByMethod)
			data.ByMethod = append(data.ByMethod, MethodBreakdown{
				MethodID:    e.MethodID,
				MethodTitle: title,
				Total:       e.Amount,
				Count:       1,
			})
		}

		category := e.Method.Category
		if e.Method.ID == 0 || category == "" {
			category = "other"
		}
		if i, ok := categoryIdx[category]; ok {
			data.ByCategory[i].Total += e.Amount
			data.ByCategory[i].Count++
		} else {
			categoryIdx[category] = len(data.ByCategory)
			data.ByCategory = append(data.ByCategory, CategoryBreakdown{
				Category: category,
				Total:    e.Amount,
				Count:    1,
			})
		}
	}

	// Daily totals within the trailing 30-day window feed both the sparse
	// series and the distribution histogram.
	cutoff := DayOf(asOf).AddDate(0, 0, -30)
	dailyTotals := map[string]float64{}
	for _, e := range entries {
		day := DayOf(e.EntryDate)
		if !day.Before(cutoff) {
			dailyTotals[day.Format("2006-01-02")] += e.Amount
		}
	}

	for date, amount := range dailyTotals {
		data.Last30Days = append(data.Last30Days, DayTotal{Date: date, Amount: amount})
	}
	sort.Slice(data.Last30Days, func(i, j int) bool {
		return data.Last30Days[i].Date < data.Last30Days[j].Date
	})

	for _, b := range histogramBuckets {
		count := 0
		for _, amount := range dailyTotals {
			if amount >= b.min && (b.max < 0 || amount < b.max) {
				count++
			}
		}
		data.AmountDistribution = append(data.AmountDistribution, RangeCount{Range: b.label, Count: count})
	}

	return data
}
