package services

import "time"

// StreakState is the storage-free view of a user's streak counters used by the
// pure calculator. The controller layer maps it to and from the gorm row.
type StreakState struct {
	CurrentStreak int
	LongestStreak int
	LastEntryDate *time.Time
}

// DayOf truncates a timestamp to its UTC calendar day. All streak arithmetic
// runs on UTC days so DST shifts can never produce a 23h or 25h "day".
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyEntryDate advances the streak for a newly logged entry date and reports
// whether the state changed. Same-day re-logs are a no-op; the next consecutive
// day increments; any gap, including a backfilled past date, resets to 1.
// Invoked once per distinct-date entry creation, never on edits.
func ApplyEntryDate(prev StreakState, entryDate time.Time) (StreakState, bool) {
	day := DayOf(entryDate)

	current := 1
	if prev.LastEntryDate != nil {
		diffDays := int(day.Sub(DayOf(*prev.LastEntryDate)).Hours() / 24)
		switch {
		case diffDays == 0:
			return prev, false
		case diffDays == 1:
			current = prev.CurrentStreak + 1
		default:
			// Gap or backfill before the last entry date: reset.
			current = 1
		}
	}

	longest := prev.LongestStreak
	if current > longest {
		longest = current
	}

	return StreakState{
		CurrentStreak: current,
		LongestStreak: longest,
		LastEntryDate: &day,
	}, true
}

// ReminderStatus reports whether the user should be nudged to keep the streak
// alive: two or more full days since the last entry, or no entry ever.
func ReminderStatus(prev StreakState, asOf time.Time) (needsReminder bool, daysMissed int) {
	if prev.LastEntryDate == nil {
		return true, 0
	}
	daysMissed = int(DayOf(asOf).Sub(DayOf(*prev.LastEntryDate)).Hours() / 24)
	return daysMissed >= 2, daysMissed
}
