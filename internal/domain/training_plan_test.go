package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatPlan(dayIDs ...string) *TrainingPlan {
	plan := &TrainingPlan{Type: PlanTypeBodybuilding}
	for _, id := range dayIDs {
		plan.Days = append(plan.Days, WorkoutDay{
			ID:        id,
			DayOfWeek: DayMon,
			Exercises: []PlannedExercise{{ID: id + "-ex", Name: "Squat"}},
		})
	}
	return plan
}

func TestResolveDay_FlatVariant(t *testing.T) {
	plan := flatPlan("d1", "d2", "d3")

	day, ok := plan.ResolveDay("d2", DayRef{})
	require.True(t, ok)
	assert.Equal(t, "d2", day.ID)

	_, ok = plan.ResolveDay("missing", DayRef{})
	assert.False(t, ok)
}

func TestResolveDay_PeriodizedWeekNumberPrecedence(t *testing.T) {
	// Two weeks carrying a day with the same id: the explicit week number
	// must win over the declared scan order.
	plan := &TrainingPlan{
		Type: PlanTypePowerlifting,
		Weeks: []PeriodizationWeek{
			{
				ID: "w1", Number: 1,
				Days: []WorkoutDay{{ID: "shared", Split: "WEEK-ONE"}},
			},
			{
				ID: "w2", Number: 2,
				Days: []WorkoutDay{{ID: "shared", Split: "WEEK-TWO"}},
			},
		},
	}

	day, ok := plan.ResolveDay("shared", DayRef{WeekNumber: 2})
	require.True(t, ok)
	assert.Equal(t, "WEEK-TWO", day.Split)

	day, ok = plan.ResolveDay("shared", DayRef{WeekID: "w2"})
	require.True(t, ok)
	assert.Equal(t, "WEEK-TWO", day.Split)

	// No selector: earliest declared week wins, deterministically.
	day, ok = plan.ResolveDay("shared", DayRef{})
	require.True(t, ok)
	assert.Equal(t, "WEEK-ONE", day.Split)
}

func TestResolveDay_PeriodizedSelectorMiss(t *testing.T) {
	plan := &TrainingPlan{
		Type: PlanTypePowerlifting,
		Weeks: []PeriodizationWeek{
			{ID: "w1", Number: 1, Days: []WorkoutDay{{ID: "d1"}}},
		},
	}

	_, ok := plan.ResolveDay("d1", DayRef{WeekID: "nope"})
	assert.False(t, ok, "unknown week id must not fall through to other weeks")

	_, ok = plan.ResolveDay("d1", DayRef{WeekNumber: 9})
	assert.False(t, ok, "unknown week number must not fall through to other weeks")
}

func TestActiveDays_PeriodizedProgression(t *testing.T) {
	plan := &TrainingPlan{
		Type: PlanTypePowerlifting,
		Weeks: []PeriodizationWeek{
			{ID: "w1", Number: 1, Days: []WorkoutDay{{ID: "w1d1"}}},
			{ID: "w2", Number: 2, Days: []WorkoutDay{{ID: "w2d1"}}},
		},
	}

	assert.Equal(t, "w1d1", plan.ActiveDays(0)[0].ID)
	assert.Equal(t, "w2d1", plan.ActiveDays(1)[0].ID)
	// Past the final week the last week keeps answering.
	assert.Equal(t, "w2d1", plan.ActiveDays(5)[0].ID)
}

func TestActiveDays_FlatVariantIgnoresWeeks(t *testing.T) {
	plan := flatPlan("d1", "d2")
	assert.Len(t, plan.ActiveDays(3), 2)
}

func TestDayCodeFor(t *testing.T) {
	assert.Equal(t, DayMon, DayCodeFor(time.Monday))
	assert.Equal(t, DaySun, DayCodeFor(time.Sunday))
	assert.Equal(t, DaySat, DayCodeFor(time.Saturday))
}

func TestPlanTypeValidation(t *testing.T) {
	assert.True(t, PlanTypePowerlifting.Valid())
	assert.True(t, PlanTypePowerlifting.Periodized())
	assert.False(t, PlanTypeCrossfit.Periodized())
	assert.False(t, PlanType("yoga").Valid())
}

func TestIsRestDay(t *testing.T) {
	day := WorkoutDay{ID: "d1"}
	assert.True(t, day.IsRestDay())
	day.Exercises = []PlannedExercise{{Name: "Deadlift"}}
	assert.False(t, day.IsRestDay())
}
