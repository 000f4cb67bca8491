package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/methodshub/backend/models"
)

func entry(methodID uint, d time.Time, amount float64) models.DailyEarning {
	return models.DailyEarning{UserID: 1, MethodID: methodID, EntryDate: d, Amount: amount}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil, day(2024, 1, 3))
	require.Zero(t, s.TotalLifetime)
	require.Zero(t, s.TotalDaily)
	require.Zero(t, s.DailyAverage)
	require.Nil(t, s.BestDay)
	require.Zero(t, s.TotalEntries)
}

func TestComputeSummaryThreeDays(t *testing.T) {
	entries := []models.DailyEarning{
		entry(1, day(2024, 1, 1), 10),
		entry(1, day(2024, 1, 2), 20),
		entry(1, day(2024, 1, 3), 30),
	}

	s := ComputeSummary(entries, day(2024, 1, 3))
	require.Equal(t, 60.0, s.TotalLifetime)
	require.Equal(t, 60.0, s.TotalYearly)
	require.Equal(t, 60.0, s.TotalMonthly)
	require.Equal(t, 30.0, s.TotalDaily)
	require.Equal(t, 20.0, s.DailyAverage)
	require.Equal(t, 3, s.TotalEntries)
	require.NotNil(t, s.BestDay)
	require.Equal(t, "2024-01-03", s.BestDay.Date)
	require.Equal(t, 30.0, s.BestDay.Amount)
}

func TestComputeSummaryPeriodBoundaries(t *testing.T) {
	entries := []models.DailyEarning{
		entry(1, day(2023, 12, 31), 5),  // previous year
		entry(1, day(2024, 1, 31), 7),   // same year, previous month
		entry(1, day(2024, 2, 1), 11),   // same month
		entry(1, day(2024, 2, 14), 13),  // today
		entry(2, day(2024, 2, 14), 17),  // today, other method
	}

	s := ComputeSummary(entries, day(2024, 2, 14))
	require.Equal(t, 53.0, s.TotalLifetime)
	require.Equal(t, 48.0, s.TotalYearly)
	require.Equal(t, 41.0, s.TotalMonthly)
	require.Equal(t, 30.0, s.TotalDaily)
	require.Equal(t, 5, s.TotalEntries)
	// 4 distinct dates
	require.InDelta(t, 53.0/4.0, s.DailyAverage, 1e-9)
	require.Equal(t, "2024-02-14", s.BestDay.Date)
	require.Equal(t, 30.0, s.BestDay.Amount)
}

func TestComputeSummaryMonthlyAdditivity(t *testing.T) {
	entries := []models.DailyEarning{
		entry(1, day(2024, 3, 1), 12.5),
		entry(1, day(2024, 3, 10), 8),
		entry(1, day(2024, 3, 15), 4.5),
	}

	s := ComputeSummary(entries, day(2024, 3, 15))
	otherDays := s.TotalMonthly - s.TotalDaily
	require.InDelta(t, s.TotalDaily+otherDays, s.TotalMonthly, 1e-9)
	require.InDelta(t, 25.0, s.TotalMonthly, 1e-9)
}

func TestComputeSummaryBestDayFirstEncounterTie(t *testing.T) {
	entries := []models.DailyEarning{
		entry(1, day(2024, 5, 2), 40),
		entry(1, day(2024, 5, 7), 40),
	}

	s := ComputeSummary(entries, day(2024, 5, 10))
	require.Equal(t, "2024-05-02", s.BestDay.Date)
}
