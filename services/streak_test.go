package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyEntryDateFirstEntry(t *testing.T) {
	next, changed := ApplyEntryDate(StreakState{}, day(2024, 1, 1))
	require.True(t, changed)
	require.Equal(t, 1, next.CurrentStreak)
	require.Equal(t, 1, next.LongestStreak)
	require.Equal(t, day(2024, 1, 1), *next.LastEntryDate)
}

func TestApplyEntryDateConsecutiveDays(t *testing.T) {
	state := StreakState{}
	for _, d := range []time.Time{day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3)} {
		var changed bool
		state, changed = ApplyEntryDate(state, d)
		require.True(t, changed)
	}
	require.Equal(t, 3, state.CurrentStreak)
	require.Equal(t, 3, state.LongestStreak)
}

func TestApplyEntryDateSameDayIsNoOp(t *testing.T) {
	last := day(2024, 1, 3)
	prev := StreakState{CurrentStreak: 3, LongestStreak: 5, LastEntryDate: &last}

	next, changed := ApplyEntryDate(prev, day(2024, 1, 3))
	require.False(t, changed)
	require.Equal(t, prev, next)

	// Idempotent: applying again still changes nothing.
	next, changed = ApplyEntryDate(next, day(2024, 1, 3))
	require.False(t, changed)
	require.Equal(t, prev, next)
}

func TestApplyEntryDateGapResets(t *testing.T) {
	last := day(2024, 1, 3)
	prev := StreakState{CurrentStreak: 3, LongestStreak: 3, LastEntryDate: &last}

	next, changed := ApplyEntryDate(prev, day(2024, 1, 10))
	require.True(t, changed)
	require.Equal(t, 1, next.CurrentStreak)
	require.Equal(t, 3, next.LongestStreak)
}

// Backfilling a date older than the last entry resets the running streak to 1.
// That is the incremental rule this engine ships with; it deliberately does
// not recompute from the full date history.
func TestApplyEntryDateBackfillResets(t *testing.T) {
	last := day(2024, 1, 3)
	prev := StreakState{CurrentStreak: 3, LongestStreak: 3, LastEntryDate: &last}

	next, changed := ApplyEntryDate(prev, day(2024, 1, 1))
	require.True(t, changed)
	require.Equal(t, 1, next.CurrentStreak)
	require.Equal(t, 3, next.LongestStreak)
	require.Equal(t, day(2024, 1, 1), *next.LastEntryDate)
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	state := StreakState{}
	dates := []time.Time{
		day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 5),
		day(2024, 1, 6), day(2024, 1, 7), day(2024, 1, 8),
	}
	for _, d := range dates {
		state, _ = ApplyEntryDate(state, d)
		require.GreaterOrEqual(t, state.LongestStreak, state.CurrentStreak)
	}
	require.Equal(t, 4, state.CurrentStreak)
	require.Equal(t, 4, state.LongestStreak)
}

func TestApplyEntryDateTruncatesWallClock(t *testing.T) {
	last := day(2024, 3, 1)
	prev := StreakState{CurrentStreak: 1, LongestStreak: 1, LastEntryDate: &last}

	// Late evening on the next calendar day still counts as one day apart.
	next, changed := ApplyEntryDate(prev, time.Date(2024, 3, 2, 23, 45, 0, 0, time.UTC))
	require.True(t, changed)
	require.Equal(t, 2, next.CurrentStreak)
}

func TestReminderStatus(t *testing.T) {
	needs, missed := ReminderStatus(StreakState{}, day(2024, 1, 10))
	require.True(t, needs)
	require.Equal(t, 0, missed)

	last := day(2024, 1, 9)
	state := StreakState{CurrentStreak: 2, LongestStreak: 2, LastEntryDate: &last}

	needs, missed = ReminderStatus(state, day(2024, 1, 10))
	require.False(t, needs)
	require.Equal(t, 1, missed)

	needs, missed = ReminderStatus(state, day(2024, 1, 11))
	require.True(t, needs)
	require.Equal(t, 2, missed)
}
