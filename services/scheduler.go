package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/methodshub/backend/models"
)

var (
	cooldownRe = regexp.MustCompile(`(?i)(\d+)\s*(min|hour|day)`)
	numberRe   = regexp.MustCompile(`\d+`)
)

// TaskStatus is one method's availability, derived from its cooldown text and
// the user's completions within the current day.
type TaskStatus struct {
	Method             models.Method `json:"method"`
	IsAvailable        bool          `json:"is_available"`
	NextAvailable      *time.Time    `json:"next_available"`
	TimeUntilAvailable int64         `json:"time_until_available_ms"`
	EarningsValue      int           `json:"earnings_value"`
	LastCompleted      *time.Time    `json:"last_completed"`
}

// ParseTimeToMinutes extracts a duration in minutes from free text like
// "30 min", "2 hours" or "1 day". Returns 0 when nothing parses.
func ParseTimeToMinutes(s string) int {
	m := cooldownRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	value, _ := strconv.Atoi(m[1])
	switch strings.ToLower(m[2]) {
	case "min":
		return value
	case "hour":
		return value * 60
	default: // day
		return value * 24 * 60
	}
}

// parseEarningsValue pulls the first integer out of the earnings hint text
// ("$5-$15" -> 5) for sort tie-breaking. 0 when none found.
func parseEarningsValue(s string) int {
	m := numberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, _ := strconv.Atoi(m)
	return v
}

// ComputeAvailableTasks derives availability and a priority ordering for the
// user's active methods. completions should be today's records only; the most
// recent per method wins. A time_required the regex cannot parse means no
// cooldown, so the task stays available.
func ComputeAvailableTasks(methods []models.Method, completions []models.MethodCompletion, now time.Time) []TaskStatus {
	lastCompletion := map[uint]time.Time{}
	for _, c := range completions {
		if prev, ok := lastCompletion[c.MethodID]; !ok || c.CompletedAt.After(prev) {
			lastCompletion[c.MethodID] = c.CompletedAt
		}
	}

	tasks := make([]TaskStatus, 0, len(methods))
	for _, m := range methods {
		task := TaskStatus{
			Method:        m,
			IsAvailable:   true,
			EarningsValue: parseEarningsValue(m.Earnings),
		}

		if completed, ok := lastCompletion[m.ID]; ok {
			c := completed
			task.LastCompleted = &c
			if minutes := ParseTimeToMinutes(m.TimeRequired); minutes > 0 {
				next := completed.Add(time.Duration(minutes) * time.Minute)
				task.NextAvailable = &next
				task.IsAvailable = !now.Before(next)
				if until := next.Sub(now); until > 0 {
					task.TimeUntilAvailable = until.Milliseconds()
				}
			}
		}

		tasks = append(tasks, task)
	}

	// Available tasks first: shortest time commitment, then highest earnings.
	// Unavailable tasks follow, soonest-available first.
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.IsAvailable != b.IsAvailable {
			return a.IsAvailable
		}
		if a.IsAvailable {
			ta, tb := ParseTimeToMinutes(a.Method.TimeRequired), ParseTimeToMinutes(b.Method.TimeRequired)
			if ta != tb {
				return ta < tb
			}
			return a.EarningsValue > b.EarningsValue
		}
		return a.TimeUntilAvailable < b.TimeUntilAvailable
	})

	return tasks
}
