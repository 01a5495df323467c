package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoggedSet is a performed (or snapshotted) set. RPE is only ever present
// on actually-performed sets.
type LoggedSet struct {
	Reps   int        `bson:"reps" json:"reps"`
	Weight float64    `bson:"weight" json:"weight"`
	Unit   WeightUnit `bson:"unit" json:"unit"`
	RPE    *float64   `bson:"rpe,omitempty" json:"rpe,omitempty"`
}

// LoggedExercise is a name + set list, used both for the planned snapshot
// and the actually-performed exercises of a log.
type LoggedExercise struct {
	Name string      `bson:"name" json:"name"`
	Sets []LoggedSet `bson:"sets" json:"sets"`
}

// WorkoutLog records that a planned day was performed on a date.
// Planned is a snapshot of the day's exercises taken at logging time and
// never changes afterwards, even if the plan is edited.
// Invariant: (UserID, TrainingPlanID, PerformedAt) is unique.
type WorkoutLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	TrainingPlanID primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`
	WorkoutDayID   string             `bson:"workoutDayId" json:"workoutDayId"`
	PerformedAt    time.Time          `bson:"performedAt" json:"performedAt"` // midnight UTC
	DayOfWeek      DayCode            `bson:"dayOfWeek" json:"dayOfWeek"`
	Split          string             `bson:"split,omitempty" json:"split,omitempty"`
	Planned        []LoggedExercise   `bson:"planned" json:"planned"`
	Actual         []LoggedExercise   `bson:"actual" json:"actual"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// SnapshotExercises copies a day's planned exercises into the log
// representation. The copy is deep: later plan edits must not reach
// a stored log.
func SnapshotExercises(day *WorkoutDay) []LoggedExercise {
	snapshot := make([]LoggedExercise, 0, len(day.Exercises))
	for _, ex := range day.Exercises {
		sets := make([]LoggedSet, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, LoggedSet{Reps: s.Reps, Weight: s.Weight, Unit: s.Unit})
		}
		snapshot = append(snapshot, LoggedExercise{Name: ex.Name, Sets: sets})
	}
	return snapshot
}
