package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanType discriminates the three training plan shapes.
type PlanType string

const (
	PlanTypeBodybuilding PlanType = "bodybuilding"
	PlanTypeCrossfit     PlanType = "crossfit"
	PlanTypePowerlifting PlanType = "powerlifting"
)

// Valid reports whether t is one of the known plan types.
func (t PlanType) Valid() bool {
	switch t {
	case PlanTypeBodybuilding, PlanTypeCrossfit, PlanTypePowerlifting:
		return true
	}
	return false
}

// Periodized reports whether the plan shape nests days inside weeks.
func (t PlanType) Periodized() bool {
	return t == PlanTypePowerlifting
}

// WeightUnit for a planned or logged set.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

func (u WeightUnit) Valid() bool {
	return u == UnitKg || u == UnitLbs
}

// DayCode is one of the seven fixed day-of-week labels.
type DayCode string

const (
	DayMon DayCode = "MON"
	DayTue DayCode = "TUE"
	DayWed DayCode = "WED"
	DayThu DayCode = "THU"
	DayFri DayCode = "FRI"
	DaySat DayCode = "SAT"
	DaySun DayCode = "SUN"
)

var dayCodes = []DayCode{DayMon, DayTue, DayWed, DayThu, DayFri, DaySat, DaySun}

func (d DayCode) Valid() bool {
	for _, c := range dayCodes {
		if d == c {
			return true
		}
	}
	return false
}

// DayCodeFor maps a time.Weekday onto the Monday-first day codes.
func DayCodeFor(wd time.Weekday) DayCode {
	// time.Weekday is Sunday-first.
	return dayCodes[(int(wd)+6)%7]
}

// Set is a single planned set of an exercise.
type Set struct {
	Reps   int        `bson:"reps" json:"reps"`
	Weight float64    `bson:"weight" json:"weight"`
	Unit   WeightUnit `bson:"unit" json:"unit"`
}

// PlannedExercise is one exercise slot within a workout day.
// ExerciseID optionally references a catalog exercise; Name is always set.
type PlannedExercise struct {
	ID         string `bson:"id" json:"id"`
	ExerciseID string `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	Name       string `bson:"name" json:"name"`
	Sets       []Set  `bson:"sets" json:"sets"`
}

// WorkoutDay is the day entity shared by all plan variants.
// A day with no exercises is a rest day.
type WorkoutDay struct {
	ID        string            `bson:"id" json:"id"`
	DayOfWeek DayCode           `bson:"dayOfWeek" json:"dayOfWeek"`
	Split     string            `bson:"split,omitempty" json:"split,omitempty"` // e.g. "PUSH"
	Exercises []PlannedExercise `bson:"exercises" json:"exercises"`
}

func (d *WorkoutDay) IsRestDay() bool {
	return len(d.Exercises) == 0
}

// PeriodizationWeek is a numbered block of days, specific to powerlifting plans.
type PeriodizationWeek struct {
	ID         string       `bson:"id" json:"id"`
	Number     int          `bson:"number" json:"number"`
	Phase      string       `bson:"phase,omitempty" json:"phase,omitempty"`
	BlockStart *time.Time   `bson:"blockStart,omitempty" json:"blockStart,omitempty"`
	FocusNotes string       `bson:"focusNotes,omitempty" json:"focusNotes,omitempty"`
	Days       []WorkoutDay `bson:"days" json:"days"`
}

// TrainingPlan is the tagged plan variant. Flat variants (bodybuilding,
// crossfit) populate Days; the powerlifting variant populates Weeks.
type TrainingPlan struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	Name      string              `bson:"name" json:"name"`
	Type      PlanType            `bson:"type" json:"type"`
	Days      []WorkoutDay        `bson:"days,omitempty" json:"days,omitempty"`
	Weeks     []PeriodizationWeek `bson:"weeks,omitempty" json:"weeks,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// DayRef narrows day resolution for periodized plans. The zero value means
// "no selector": scan weeks in declared order.
type DayRef struct {
	WeekID     string
	WeekNumber int
}

// dayIndex builds a stable id -> index map over a day list.
func dayIndex(days []WorkoutDay) map[string]int {
	idx := make(map[string]int, len(days))
	for i, d := range days {
		if _, seen := idx[d.ID]; !seen {
			idx[d.ID] = i
		}
	}
	return idx
}

// ResolveDay locates a concrete day inside the plan, dispatching on the
// variant tag exactly once. For periodized plans the precedence is:
// explicit week id, then first week matching the week number, then the
// first week (in declared order) containing the day id.
// A miss returns ok=false; it is a normal outcome, not an error.
func (p *TrainingPlan) ResolveDay(dayID string, ref DayRef) (*WorkoutDay, bool) {
	if !p.Type.Periodized() {
		if i, ok := dayIndex(p.Days)[dayID]; ok {
			return &p.Days[i], true
		}
		return nil, false
	}

	if ref.WeekID != "" {
		for wi := range p.Weeks {
			if p.Weeks[wi].ID == ref.WeekID {
				return dayInWeek(&p.Weeks[wi], dayID)
			}
		}
		return nil, false
	}
	if ref.WeekNumber > 0 {
		for wi := range p.Weeks {
			if p.Weeks[wi].Number == ref.WeekNumber {
				return dayInWeek(&p.Weeks[wi], dayID)
			}
		}
		return nil, false
	}
	// Earliest week containing the id wins, deterministically.
	for wi := range p.Weeks {
		if d, ok := dayInWeek(&p.Weeks[wi], dayID); ok {
			return d, true
		}
	}
	return nil, false
}

func dayInWeek(w *PeriodizationWeek, dayID string) (*WorkoutDay, bool) {
	if i, ok := dayIndex(w.Days)[dayID]; ok {
		return &w.Days[i], true
	}
	return nil, false
}

// ActiveDays returns the day list analytics should treat as the current
// planning horizon: the flat day list, or the active week's days for
// periodized plans. weeksElapsed is the number of whole weeks since the
// assignment started (0 during the first week); past the last declared
// week the last week keeps answering.
func (p *TrainingPlan) ActiveDays(weeksElapsed int) []WorkoutDay {
	if !p.Type.Periodized() {
		return p.Days
	}
	if len(p.Weeks) == 0 {
		return nil
	}
	target := weeksElapsed + 1
	last := &p.Weeks[0]
	for wi := range p.Weeks {
		w := &p.Weeks[wi]
		if w.Number == target {
			return w.Days
		}
		if w.Number > last.Number {
			last = w
		}
	}
	if target > last.Number {
		return last.Days
	}
	return p.Weeks[0].Days
}

// AllDays flattens every day of the plan in declared order.
func (p *TrainingPlan) AllDays() []WorkoutDay {
	if !p.Type.Periodized() {
		return p.Days
	}
	var days []WorkoutDay
	for _, w := range p.Weeks {
		days = append(days, w.Days...)
	}
	return days
}
