package service

import (
	"testing"
	"time"

	"traintrack/training-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logOn(t time.Time, dayID string, sets ...domain.LoggedSet) domain.WorkoutLog {
	return domain.WorkoutLog{
		WorkoutDayID: dayID,
		PerformedAt:  domain.StartOfDay(t),
		Actual:       []domain.LoggedExercise{{Name: "Bench Press", Sets: sets}},
	}
}

func TestWeekBounds_MondayStart(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	start, end := weekBounds(dateUTC(2024, time.March, 6))
	assert.Equal(t, dateUTC(2024, time.March, 4), start)
	assert.Equal(t, dateUTC(2024, time.March, 10), domain.StartOfDay(end))

	// A Monday is its own week start.
	start, _ = weekBounds(dateUTC(2024, time.March, 4))
	assert.Equal(t, dateUTC(2024, time.March, 4), start)

	// A Sunday belongs to the week started the previous Monday.
	start, _ = weekBounds(dateUTC(2024, time.March, 10))
	assert.Equal(t, dateUTC(2024, time.March, 4), start)
}

func TestVolumeBetween(t *testing.T) {
	now := dateUTC(2024, time.March, 6)
	start, end := weekBounds(now)

	logs := []domain.WorkoutLog{
		logOn(now, "d1",
			domain.LoggedSet{Reps: 10, Weight: 100, Unit: domain.UnitKg},
			domain.LoggedSet{Reps: 8, Weight: 80, Unit: domain.UnitKg},
		),
		// Previous week, must not count.
		logOn(dateUTC(2024, time.February, 28), "d2",
			domain.LoggedSet{Reps: 5, Weight: 200, Unit: domain.UnitKg},
		),
	}

	assert.Equal(t, 1640.0, volumeBetween(logs, start, end))
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		dates []time.Time
		want  int
	}{
		{
			name:  "three consecutive days",
			today: dateUTC(2024, time.March, 3),
			dates: []time.Time{
				dateUTC(2024, time.March, 3),
				dateUTC(2024, time.March, 2),
				dateUTC(2024, time.March, 1),
			},
			want: 3,
		},
		{
			name:  "gap of three days breaks the streak",
			today: dateUTC(2024, time.March, 3),
			dates: []time.Time{
				dateUTC(2024, time.March, 3),
				dateUTC(2024, time.February, 28),
			},
			want: 1,
		},
		{
			name:  "yesterday still counts from today",
			today: dateUTC(2024, time.March, 3),
			dates: []time.Time{dateUTC(2024, time.March, 2)},
			want:  1,
		},
		{
			name:  "no logs",
			today: dateUTC(2024, time.March, 3),
			dates: nil,
			want:  0,
		},
		{
			name:  "same-date logs count once",
			today: dateUTC(2024, time.March, 3),
			dates: []time.Time{
				dateUTC(2024, time.March, 3),
				dateUTC(2024, time.March, 3),
				dateUTC(2024, time.March, 2),
			},
			want: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logs []domain.WorkoutLog
			for _, d := range tc.dates {
				logs = append(logs, logOn(d, "d1"))
			}
			assert.Equal(t, tc.want, streak(logs, tc.today))
		})
	}
}

func TestGoalMessage(t *testing.T) {
	assert.Equal(t, "Complete 2 more workouts to finish this week!", goalMessage(2))
	assert.Equal(t, "Complete 1 more workout to finish this week!", goalMessage(1))
	assert.Equal(t, "All workouts done this week — recovery time!", goalMessage(0))
}

func TestRemainingGoal(t *testing.T) {
	assert.Equal(t, 2, remainingGoal(4, 2))
	assert.Equal(t, 0, remainingGoal(3, 3))
	// Extra logged workouts never go negative.
	assert.Equal(t, 0, remainingGoal(3, 5))
}

func TestChangePercent(t *testing.T) {
	assert.Equal(t, "N/A", changePercent(1640, 0))
	assert.Equal(t, "100.0%", changePercent(2000, 1000))
	assert.Equal(t, "-50.0%", changePercent(500, 1000))
}

func TestNextSkippedDay(t *testing.T) {
	days := []domain.WorkoutDay{
		{ID: "rest", DayOfWeek: domain.DayMon}, // rest day, skipped from scan
		{ID: "d1", DayOfWeek: domain.DayTue, Split: "PUSH", Exercises: []domain.PlannedExercise{{Name: "Bench"}}},
		{ID: "d2", DayOfWeek: domain.DayThu, Split: "PULL", Exercises: []domain.PlannedExercise{{Name: "Row"}}},
	}

	logs := []domain.WorkoutLog{logOn(dateUTC(2024, time.March, 5), "d1")}

	day, ok := nextSkippedDay(days, logs)
	require.True(t, ok)
	assert.Equal(t, "d2", day.ID)

	logs = append(logs, logOn(dateUTC(2024, time.March, 7), "d2"))
	_, ok = nextSkippedDay(days, logs)
	assert.False(t, ok)
}

func TestNextUpcomingDay_IgnoresOlderWeeks(t *testing.T) {
	days := []domain.WorkoutDay{
		{ID: "d1", Split: "PUSH", Exercises: []domain.PlannedExercise{{Name: "Bench"}}},
		{ID: "d2", Split: "PULL", Exercises: []domain.PlannedExercise{{Name: "Row"}}},
	}

	now := dateUTC(2024, time.March, 6)
	// d1 was done two weeks ago but not this week: it is upcoming again.
	logs := []domain.WorkoutLog{logOn(dateUTC(2024, time.February, 20), "d1")}

	day, ok := nextUpcomingDay(days, logs, now)
	require.True(t, ok)
	assert.Equal(t, "d1", day.ID)

	logs = append(logs, logOn(now, "d1"))
	day, ok = nextUpcomingDay(days, logs, now)
	require.True(t, ok)
	assert.Equal(t, "d2", day.ID)
}

func TestPersonalRecords(t *testing.T) {
	logs := []domain.WorkoutLog{
		// Newest first, as the repository returns them.
		{
			PerformedAt: dateUTC(2024, time.March, 5),
			Actual: []domain.LoggedExercise{
				{Name: "Bench Press", Sets: []domain.LoggedSet{{Reps: 5, Weight: 100, Unit: domain.UnitKg}}},
				{Name: "Squat", Sets: []domain.LoggedSet{{Reps: 5, Weight: 140, Unit: domain.UnitKg}}},
			},
		},
		{
			PerformedAt: dateUTC(2024, time.March, 1),
			Actual: []domain.LoggedExercise{
				{Name: "Bench Press", Sets: []domain.LoggedSet{{Reps: 3, Weight: 110, Unit: domain.UnitKg}}},
			},
		},
	}

	records := personalRecords(logs)
	require.Len(t, records, 2)

	byName := map[string]PersonalRecord{}
	for _, r := range records {
		byName[r.Exercise] = r
	}
	assert.Equal(t, 110.0, byName["Bench Press"].Weight)
	assert.Equal(t, 3, byName["Bench Press"].Reps)
	assert.Equal(t, dateUTC(2024, time.March, 1), byName["Bench Press"].Date)
	assert.Equal(t, 140.0, byName["Squat"].Weight)
}
