package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/methodshub/backend/models"
)

func joinedEntry(methodID uint, title, category string, d time.Time, amount float64) models.DailyEarning {
	e := entry(methodID, d, amount)
	if title != "" || category != "" {
		e.Method = models.Method{ID: methodID, Title: title, Category: category}
	}
	return e
}

func TestComputeAnalyticsGrouping(t *testing.T) {
	asOf := day(2024, 6, 15)
	entries := []models.DailyEarning{
		joinedEntry(1, "Daily Survey", "Survey", day(2024, 6, 10), 5),
		joinedEntry(1, "Daily Survey", "Survey", day(2024, 6, 11), 7),
		joinedEntry(2, "Cashback App", "Cashback", day(2024, 6, 11), 3),
	}

	data := ComputeAnalytics(entries, asOf)

	require.Len(t, data.ByMethod, 2)
	require.Equal(t, "Daily Survey", data.ByMethod[0].MethodTitle)
	require.Equal(t, 12.0, data.ByMethod[0].Total)
	require.Equal(t, 2, data.ByMethod[0].Count)
	require.Equal(t, "Cashback App", data.ByMethod[1].MethodTitle)

	require.Len(t, data.ByCategory, 2)
	require.Equal(t, "Survey", data.ByCategory[0].Category)
	require.Equal(t, 12.0, data.ByCategory[0].Total)
}

func TestComputeAnalyticsOrphanedMethod(t *testing.T) {
	// Entry whose method row was deleted: no join data at all.
	entries := []models.DailyEarning{
		joinedEntry(9, "", "", day(2024, 6, 10), 5),
	}

	data := ComputeAnalytics(entries, day(2024, 6, 15))
	require.Equal(t, "Unknown", data.ByMethod[0].MethodTitle)
	require.Equal(t, "other", data.ByCategory[0].Category)
}

func TestComputeAnalyticsLast30DaysIsSparse(t *testing.T) {
	asOf := day(2024, 6, 30)
	entries := []models.DailyEarning{
		joinedEntry(1, "A", "Task", day(2024, 6, 1), 10),
		joinedEntry(1, "A", "Task", day(2024, 6, 20), 20),
		joinedEntry(1, "A", "Task", day(2024, 4, 1), 99), // outside window
	}

	data := ComputeAnalytics(entries, asOf)
	require.Len(t, data.Last30Days, 2)
	require.Equal(t, "2024-06-01", data.Last30Days[0].Date)
	require.Equal(t, "2024-06-20", data.Last30Days[1].Date)
}

func TestComputeAnalyticsDistributionBucketsDailyTotals(t *testing.T) {
	asOf := day(2024, 6, 30)
	// Two entries on the same day sum to 12 and land in the $10-$25 bucket,
	// not twice in $0-$10.
	entries := []models.DailyEarning{
		joinedEntry(1, "A", "Task", day(2024, 6, 10), 6),
		joinedEntry(2, "B", "Task", day(2024, 6, 10), 6),
		joinedEntry(1, "A", "Task", day(2024, 6, 11), 150),
	}

	data := ComputeAnalytics(entries, asOf)
	require.Len(t, data.AmountDistribution, 5)

	counts := map[string]int{}
	for _, rc := range data.AmountDistribution {
		counts[rc.Range] = rc.Count
	}
	require.Equal(t, 0, counts["$0-$10"])
	require.Equal(t, 1, counts["$10-$25"])
	require.Equal(t, 0, counts["$25-$50"])
	require.Equal(t, 0, counts["$50-$100"])
	require.Equal(t, 1, counts["$100+"])
}
