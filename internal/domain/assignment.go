package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanAssignment binds a user to one training plan over a date interval.
// A nil EndDate means the assignment is open-ended.
// Invariant: for a given user, no two assignment intervals overlap.
type PlanAssignment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	TrainingPlanID primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`
	StartDate      time.Time          `bson:"startDate" json:"startDate"`
	EndDate        *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Contains reports whether date falls inside the assignment interval:
// startDate <= date and (no end date or endDate >= date).
func (a *PlanAssignment) Contains(date time.Time) bool {
	d := StartOfDay(date)
	if StartOfDay(a.StartDate).After(d) {
		return false
	}
	if a.EndDate == nil {
		return true
	}
	return !StartOfDay(*a.EndDate).Before(d)
}

// Overlaps tests the assignment interval against [start, end] with
// inclusive comparisons on both ends; a nil end acts as an infinite
// sentinel. An interval ending on day X conflicts with one starting on
// day X.
func (a *PlanAssignment) Overlaps(start time.Time, end *time.Time) bool {
	s1 := StartOfDay(a.StartDate)
	s2 := StartOfDay(start)
	if end != nil && s1.After(StartOfDay(*end)) {
		return false
	}
	if a.EndDate != nil && s2.After(StartOfDay(*a.EndDate)) {
		return false
	}
	return true
}

// WeeksSinceStart counts whole weeks elapsed between the assignment start
// and date (0 during the first week). Drives the active periodization week.
func (a *PlanAssignment) WeeksSinceStart(date time.Time) int {
	days := int(StartOfDay(date).Sub(StartOfDay(a.StartDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

// StartOfDay normalizes t to midnight UTC. All day-granular comparisons
// in the engine run against this fixed reference zone so boundaries stay
// deterministic regardless of the caller's device zone.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay is the last instant of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
