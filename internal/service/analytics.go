package service

import (
	"fmt"
	"time"

	"traintrack/training-app/internal/domain"
)

// Canonical analytics primitives shared by the stats and workout services.
// Everything here is a pure function of the active assignment, its plan and
// the user's log history. Weeks are ISO weeks: Monday 00:00 UTC through
// Sunday 23:59:59.

// weekBounds returns the Monday-start week containing t.
func weekBounds(t time.Time) (start, end time.Time) {
	day := domain.StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// volumeBetween sums weight*reps over every actually-performed set of every
// log whose performed date falls within [start, end].
func volumeBetween(logs []domain.WorkoutLog, start, end time.Time) float64 {
	var volume float64
	for i := range logs {
		performed := domain.StartOfDay(logs[i].PerformedAt)
		if performed.Before(start) || performed.After(end) {
			continue
		}
		for _, ex := range logs[i].Actual {
			for _, set := range ex.Sets {
				volume += set.Weight * float64(set.Reps)
			}
		}
	}
	return volume
}

// logsBetween counts logs performed within [start, end].
func logsBetween(logs []domain.WorkoutLog, start, end time.Time) int {
	count := 0
	for i := range logs {
		performed := domain.StartOfDay(logs[i].PerformedAt)
		if !performed.Before(start) && !performed.After(end) {
			count++
		}
	}
	return count
}

// plannedDayCount counts the non-rest days of the current planning horizon.
func plannedDayCount(days []domain.WorkoutDay) int {
	count := 0
	for i := range days {
		if !days[i].IsRestDay() {
			count++
		}
	}
	return count
}

// remainingGoal clamps plannedDays - completed at zero.
func remainingGoal(plannedDays, completed int) int {
	if remaining := plannedDays - completed; remaining > 0 {
		return remaining
	}
	return 0
}

// goalMessage renders the weekly goal projection.
func goalMessage(remaining int) string {
	switch {
	case remaining > 1:
		return fmt.Sprintf("Complete %d more workouts to finish this week!", remaining)
	case remaining == 1:
		return "Complete 1 more workout to finish this week!"
	default:
		return "All workouts done this week — recovery time!"
	}
}

// streak walks logs (already sorted by performed date descending) from
// today backwards, tolerating a single-day gap between consecutive
// workouts. Multiple logs on the same date advance the cursor only once.
func streak(logs []domain.WorkoutLog, today time.Time) int {
	cursor := domain.StartOfDay(today)
	count := 0
	var lastCounted time.Time
	for i := range logs {
		day := domain.StartOfDay(logs[i].PerformedAt)
		if !lastCounted.IsZero() && day.Equal(lastCounted) {
			continue
		}
		diff := int(cursor.Sub(day).Hours() / 24)
		if diff < 0 {
			// Log dated after the cursor (future-dated entry); ignore.
			continue
		}
		if diff > 1 {
			break
		}
		count++
		cursor = day
		lastCounted = day
	}
	return count
}

// nextSkippedDay scans the planning horizon in declared order and returns
// the first non-rest day whose id never appears in the log history.
func nextSkippedDay(days []domain.WorkoutDay, logs []domain.WorkoutLog) (*domain.WorkoutDay, bool) {
	logged := make(map[string]struct{}, len(logs))
	for i := range logs {
		logged[logs[i].WorkoutDayID] = struct{}{}
	}
	for i := range days {
		if days[i].IsRestDay() {
			continue
		}
		if _, ok := logged[days[i].ID]; !ok {
			return &days[i], true
		}
	}
	return nil, false
}

// nextUpcomingDay returns the first non-rest day of the planning horizon
// with no log in the week containing now.
func nextUpcomingDay(days []domain.WorkoutDay, logs []domain.WorkoutLog, now time.Time) (*domain.WorkoutDay, bool) {
	start, end := weekBounds(now)
	loggedThisWeek := make(map[string]struct{})
	for i := range logs {
		performed := domain.StartOfDay(logs[i].PerformedAt)
		if !performed.Before(start) && !performed.After(end) {
			loggedThisWeek[logs[i].WorkoutDayID] = struct{}{}
		}
	}
	for i := range days {
		if days[i].IsRestDay() {
			continue
		}
		if _, ok := loggedThisWeek[days[i].ID]; !ok {
			return &days[i], true
		}
	}
	return nil, false
}

// changePercent formats the week-over-week volume delta, reporting "N/A"
// when last week's volume is zero.
func changePercent(thisWeek, lastWeek float64) string {
	if lastWeek == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", (thisWeek-lastWeek)/lastWeek*100)
}

// PersonalRecord is the heaviest logged set for one exercise name.
type PersonalRecord struct {
	Exercise string            `json:"exercise"`
	Weight   float64           `json:"weight"`
	Unit     domain.WeightUnit `json:"unit"`
	Reps     int               `json:"reps"`
	Date     time.Time         `json:"date"`
}

// personalRecords finds, per exercise name, the maximum weight across all
// actually-performed sets. Logs arrive newest first; on equal weight the
// earliest achievement is kept.
func personalRecords(logs []domain.WorkoutLog) []PersonalRecord {
	best := make(map[string]PersonalRecord)
	var order []string
	for i := range logs {
		for _, ex := range logs[i].Actual {
			for _, set := range ex.Sets {
				record, seen := best[ex.Name]
				if !seen {
					order = append(order, ex.Name)
				}
				if !seen || set.Weight >= record.Weight {
					best[ex.Name] = PersonalRecord{
						Exercise: ex.Name,
						Weight:   set.Weight,
						Unit:     set.Unit,
						Reps:     set.Reps,
						Date:     logs[i].PerformedAt,
					}
				}
			}
		}
	}
	records := make([]PersonalRecord, 0, len(order))
	for _, name := range order {
		records = append(records, best[name])
	}
	return records
}
