package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreakMilestoneAward(t *testing.T) {
	cfg := DefaultPointsConfig()
	require.Equal(t, 0, cfg.StreakMilestoneAward(1))
	require.Equal(t, 10, cfg.StreakMilestoneAward(7))
	require.Equal(t, 0, cfg.StreakMilestoneAward(8))
	require.Equal(t, 50, cfg.StreakMilestoneAward(30))
	require.Equal(t, 200, cfg.StreakMilestoneAward(100))
}

func TestMonthlyVolumeAwardCrossing(t *testing.T) {
	cfg := DefaultPointsConfig()
	require.Equal(t, 0, cfg.MonthlyVolumeAward(0, 99.99))
	require.Equal(t, 10, cfg.MonthlyVolumeAward(90, 110))
	// Already past the threshold: no double award.
	require.Equal(t, 0, cfg.MonthlyVolumeAward(110, 130))
	// One large entry can cross several thresholds at once.
	require.Equal(t, 115, cfg.MonthlyVolumeAward(50, 1200))
	require.Equal(t, 75, cfg.MonthlyVolumeAward(600, 1000))
}
