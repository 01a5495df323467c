package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssignmentContains(t *testing.T) {
	end := day(2024, time.January, 31)
	a := PlanAssignment{StartDate: day(2024, time.January, 1), EndDate: &end}

	assert.True(t, a.Contains(day(2024, time.January, 1)))
	assert.True(t, a.Contains(day(2024, time.January, 15)))
	assert.True(t, a.Contains(day(2024, time.January, 31)))
	assert.False(t, a.Contains(day(2023, time.December, 31)))
	assert.False(t, a.Contains(day(2024, time.February, 1)))
}

func TestAssignmentContains_OpenEnded(t *testing.T) {
	a := PlanAssignment{StartDate: day(2024, time.January, 1)}

	assert.True(t, a.Contains(day(2030, time.June, 15)))
	assert.False(t, a.Contains(day(2023, time.December, 31)))
}

func TestAssignmentContains_NormalizesTimeOfDay(t *testing.T) {
	end := day(2024, time.January, 31)
	a := PlanAssignment{StartDate: day(2024, time.January, 1), EndDate: &end}

	// Late evening on the end date is still inside the interval.
	assert.True(t, a.Contains(time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC)))
}

func TestAssignmentOverlaps(t *testing.T) {
	end := day(2024, time.January, 31)
	a := PlanAssignment{StartDate: day(2024, time.January, 1), EndDate: &end}

	mid := day(2024, time.February, 20)

	tests := []struct {
		name  string
		start time.Time
		end   *time.Time
		want  bool
	}{
		{"contained", day(2024, time.January, 15), &mid, true},
		{"open-ended starting inside", day(2024, time.January, 15), nil, true},
		{"starting after", day(2024, time.February, 1), nil, false},
		{"ending before", day(2023, time.November, 1), ptr(day(2023, time.December, 31)), false},
		// Boundary policy: adjacency counts as overlap (inclusive ends).
		{"new starts on existing end", day(2024, time.January, 31), nil, true},
		{"new ends on existing start", day(2023, time.December, 1), ptr(day(2024, time.January, 1)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.start, tc.end))
		})
	}
}

func TestAssignmentOverlaps_BothOpenEnded(t *testing.T) {
	a := PlanAssignment{StartDate: day(2024, time.January, 1)}
	assert.True(t, a.Overlaps(day(2030, time.January, 1), nil))
}

func TestWeeksSinceStart(t *testing.T) {
	a := PlanAssignment{StartDate: day(2024, time.January, 1)} // a Monday

	assert.Equal(t, 0, a.WeeksSinceStart(day(2024, time.January, 1)))
	assert.Equal(t, 0, a.WeeksSinceStart(day(2024, time.January, 7)))
	assert.Equal(t, 1, a.WeeksSinceStart(day(2024, time.January, 8)))
	assert.Equal(t, 3, a.WeeksSinceStart(day(2024, time.January, 25)))
	// Dates before the start clamp to the first week.
	assert.Equal(t, 0, a.WeeksSinceStart(day(2023, time.December, 25)))
}

func TestStartOfDayFixedZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 23:00 in New York is already the next UTC day; normalization is
	// pinned to UTC so the boundary is deterministic.
	local := time.Date(2024, time.March, 1, 23, 0, 0, 0, ny)
	assert.Equal(t, day(2024, time.March, 2), StartOfDay(local))
}

func ptr(t time.Time) *time.Time {
	return &t
}
