package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/methodshub/backend/models"
)

func method(id uint, title, timeRequired, earnings string) models.Method {
	return models.Method{ID: id, Title: title, TimeRequired: timeRequired, Earnings: earnings, IsActive: true}
}

func completion(methodID uint, at time.Time) models.MethodCompletion {
	return models.MethodCompletion{UserID: 1, MethodID: methodID, CompletedAt: at}
}

func TestParseTimeToMinutes(t *testing.T) {
	require.Equal(t, 30, ParseTimeToMinutes("30 min"))
	require.Equal(t, 30, ParseTimeToMinutes("30min"))
	require.Equal(t, 60, ParseTimeToMinutes("1 hour"))
	require.Equal(t, 120, ParseTimeToMinutes("2 Hours"))
	require.Equal(t, 1440, ParseTimeToMinutes("1 day"))
	require.Equal(t, 0, ParseTimeToMinutes("whenever"))
	require.Equal(t, 0, ParseTimeToMinutes(""))
}

func TestComputeAvailableTasksCooldownPending(t *testing.T) {
	completed := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := completed.Add(20 * time.Minute)

	tasks := ComputeAvailableTasks(
		[]models.Method{method(1, "Survey", "30 min", "$5")},
		[]models.MethodCompletion{completion(1, completed)},
		now,
	)

	require.Len(t, tasks, 1)
	require.False(t, tasks[0].IsAvailable)
	require.Equal(t, int64(600000), tasks[0].TimeUntilAvailable)
	require.Equal(t, completed.Add(30*time.Minute), *tasks[0].NextAvailable)
}

func TestComputeAvailableTasksCooldownElapsed(t *testing.T) {
	completed := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := completed.Add(61 * time.Minute)

	tasks := ComputeAvailableTasks(
		[]models.Method{method(1, "Videos", "1 hour", "$2")},
		[]models.MethodCompletion{completion(1, completed)},
		now,
	)

	require.True(t, tasks[0].IsAvailable)
	require.Zero(t, tasks[0].TimeUntilAvailable)
}

func TestComputeAvailableTasksUnparsableCooldownStaysAvailable(t *testing.T) {
	completed := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	tasks := ComputeAvailableTasks(
		[]models.Method{method(1, "Odd jobs", "as needed", "$10")},
		[]models.MethodCompletion{completion(1, completed)},
		completed.Add(time.Minute),
	)

	require.True(t, tasks[0].IsAvailable)
	require.Nil(t, tasks[0].NextAvailable)
}

func TestComputeAvailableTasksNoCompletionIsAvailable(t *testing.T) {
	tasks := ComputeAvailableTasks(
		[]models.Method{method(1, "Survey", "30 min", "$5")},
		nil,
		time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	)
	require.True(t, tasks[0].IsAvailable)
	require.Nil(t, tasks[0].LastCompleted)
}

func TestComputeAvailableTasksOrdering(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	methods := []models.Method{
		method(1, "Long survey", "2 hours", "$20"),
		method(2, "On cooldown A", "1 hour", "$5"),
		method(3, "Quick task", "10 min", "$3"),
		method(4, "Quick task better pay", "10 min, $8 each", "$8"),
		method(5, "On cooldown B", "30 min", "$5"),
	}
	completions := []models.MethodCompletion{
		completion(2, now.Add(-10*time.Minute)), // 50 min left
		completion(5, now.Add(-10*time.Minute)), // 20 min left
	}

	tasks := ComputeAvailableTasks(methods, completions, now)

	var order []uint
	for _, task := range tasks {
		order = append(order, task.Method.ID)
	}
	// Available first (10 min before 2 hours, higher earnings breaking the
	// tie), then unavailable by soonest next slot.
	require.Equal(t, []uint{4, 3, 1, 5, 2}, order)

	for i, task := range tasks {
		if i > 0 && task.IsAvailable {
			require.True(t, tasks[i-1].IsAvailable, "available tasks must sort before unavailable")
		}
	}
}

func TestComputeAvailableTasksLatestCompletionWins(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	completions := []models.MethodCompletion{
		completion(1, now.Add(-3*time.Hour)),
		completion(1, now.Add(-5*time.Minute)),
	}

	tasks := ComputeAvailableTasks([]models.Method{method(1, "Survey", "30 min", "$5")}, completions, now)
	require.False(t, tasks[0].IsAvailable)
	require.Equal(t, now.Add(-5*time.Minute), *tasks[0].LastCompleted)
}
