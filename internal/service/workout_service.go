package service

import (
	"context"
	"errors"
	"time"

	"traintrack/training-app/internal/domain"
	"traintrack/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogNotFound      = errors.New("workout log not found")
	ErrLogAlreadyExists = errors.New("a workout log already exists for this plan and day")
	ErrNoActivePlan     = errors.New("no active training plan for this date")
	ErrInvalidLogInput  = errors.New("invalid workout log payload")
)

// --- Input DTOs ---

type ActualSetInput struct {
	Reps   int               `json:"reps"`
	Weight float64           `json:"weight"`
	Unit   domain.WeightUnit `json:"unit"`
	RPE    *float64          `json:"rpe,omitempty"`
}

type ActualExerciseInput struct {
	Name string           `json:"name"`
	Sets []ActualSetInput `json:"sets"`
}

// LogWorkoutInput is a "day X of plan P was performed on date T" event.
type LogWorkoutInput struct {
	PlanID      primitive.ObjectID
	DayID       string
	PerformedAt time.Time
	WeekRef     domain.DayRef
	Actual      []ActualExerciseInput
}

// --- Service Interface ---

type WorkoutService interface {
	LogWorkout(ctx context.Context, userID primitive.ObjectID, input LogWorkoutInput) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, logID, userID primitive.ObjectID) error
	GetLogs(ctx context.Context, userID primitive.ObjectID, date *time.Time) ([]domain.WorkoutLog, error)
	NextSkippedDay(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.WorkoutDay, error)
	NextUpcomingDay(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.WorkoutDay, error)
}

// --- Service Implementation ---

// workoutService implements the WorkoutService interface.
type workoutService struct {
	logRepo        repository.WorkoutLogRepository
	planRepo       repository.TrainingPlanRepository
	assignmentRepo repository.AssignmentRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	logRepo repository.WorkoutLogRepository,
	planRepo repository.TrainingPlanRepository,
	assignmentRepo repository.AssignmentRepository,
) WorkoutService {
	return &workoutService{
		logRepo:        logRepo,
		planRepo:       planRepo,
		assignmentRepo: assignmentRepo,
	}
}

// LogWorkout reconciles a performed day against the plan: resolve the day,
// snapshot its currently planned exercises, and persist an immutable log.
// The unique (user, plan, performed-date) index is the actual uniqueness
// guarantee; any duplicate insert surfaces as ErrLogAlreadyExists.
func (s *workoutService) LogWorkout(ctx context.Context, userID primitive.ObjectID, input LogWorkoutInput) (*domain.WorkoutLog, error) {
	if userID == primitive.NilObjectID || input.PlanID == primitive.NilObjectID || input.DayID == "" {
		return nil, ErrInvalidLogInput
	}

	// 1. Resolve the plan and the day within it.
	plan, err := s.planRepo.GetByID(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}

	day, ok := plan.ResolveDay(input.DayID, input.WeekRef)
	if !ok {
		return nil, ErrDayNotFound
	}

	// 2. Build the log: planned snapshot + caller-submitted actuals.
	actual, err := buildActualExercises(input.Actual)
	if err != nil {
		return nil, err
	}
	performed := input.PerformedAt
	if performed.IsZero() {
		performed = time.Now()
	}

	log := &domain.WorkoutLog{
		UserID:         userID,
		TrainingPlanID: plan.ID,
		WorkoutDayID:   day.ID,
		PerformedAt:    domain.StartOfDay(performed),
		DayOfWeek:      day.DayOfWeek,
		Split:          day.Split,
		Planned:        domain.SnapshotExercises(day),
		Actual:         actual,
	}

	// 3. Persist; the storage constraint decides duplicates.
	if _, err := s.logRepo.Create(ctx, log); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrLogAlreadyExists
		}
		return nil, err
	}
	return log, nil
}

func buildActualExercises(inputs []ActualExerciseInput) ([]domain.LoggedExercise, error) {
	exercises := make([]domain.LoggedExercise, 0, len(inputs))
	for _, e := range inputs {
		if e.Name == "" {
			return nil, ErrInvalidLogInput
		}
		sets := make([]domain.LoggedSet, 0, len(e.Sets))
		for _, st := range e.Sets {
			if st.Reps <= 0 || st.Weight < 0 || !st.Unit.Valid() {
				return nil, ErrInvalidLogInput
			}
			if st.RPE != nil && (*st.RPE < 0 || *st.RPE > 10) {
				return nil, ErrInvalidLogInput
			}
			sets = append(sets, domain.LoggedSet{
				Reps:   st.Reps,
				Weight: st.Weight,
				Unit:   st.Unit,
				RPE:    st.RPE,
			})
		}
		exercises = append(exercises, domain.LoggedExercise{Name: e.Name, Sets: sets})
	}
	return exercises, nil
}

// DeleteLog removes a log owned by the caller.
func (s *workoutService) DeleteLog(ctx context.Context, logID, userID primitive.ObjectID) error {
	err := s.logRepo.Delete(ctx, logID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLogNotFound
	}
	return err
}

// GetLogs lists the caller's logs, newest first, optionally restricted to a
// single UTC calendar day.
func (s *workoutService) GetLogs(ctx context.Context, userID primitive.ObjectID, date *time.Time) ([]domain.WorkoutLog, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	var from, to *time.Time
	if date != nil {
		f := domain.StartOfDay(*date)
		t := domain.EndOfDay(*date)
		from, to = &f, &t
	}
	return s.logRepo.GetByUserID(ctx, userID, from, to)
}

// activeHorizon loads the active assignment, its plan, the current day
// list and the user's full log history. Shared by the skipped/upcoming
// lookups and the stats service.
func activeHorizon(
	ctx context.Context,
	assignmentRepo repository.AssignmentRepository,
	planRepo repository.TrainingPlanRepository,
	logRepo repository.WorkoutLogRepository,
	userID primitive.ObjectID,
	now time.Time,
) (*domain.TrainingPlan, []domain.WorkoutDay, []domain.WorkoutLog, error) {
	assignment, err := assignmentRepo.FindActive(ctx, userID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, ErrNoActivePlan
		}
		return nil, nil, nil, err
	}

	plan, err := planRepo.GetByID(ctx, assignment.TrainingPlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, ErrNoActivePlan
		}
		return nil, nil, nil, err
	}

	logs, err := logRepo.GetByUserID(ctx, userID, nil, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	days := plan.ActiveDays(assignment.WeeksSinceStart(now))
	return plan, days, logs, nil
}

// NextSkippedDay surfaces the first planned day the user has never logged.
// Only meaningful while the weekly goal is unmet; once every planned day
// of the week is done there is nothing skipped to catch up on.
func (s *workoutService) NextSkippedDay(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.WorkoutDay, error) {
	_, days, logs, err := activeHorizon(ctx, s.assignmentRepo, s.planRepo, s.logRepo, userID, now)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := weekBounds(now)
	remaining := remainingGoal(plannedDayCount(days), logsBetween(logs, weekStart, weekEnd))
	if remaining == 0 {
		return nil, ErrDayNotFound
	}

	day, ok := nextSkippedDay(days, logs)
	if !ok {
		return nil, ErrDayNotFound
	}
	return day, nil
}

// NextUpcomingDay surfaces the first planned day not yet logged this week.
func (s *workoutService) NextUpcomingDay(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.WorkoutDay, error) {
	_, days, logs, err := activeHorizon(ctx, s.assignmentRepo, s.planRepo, s.logRepo, userID, now)
	if err != nil {
		return nil, err
	}

	day, ok := nextUpcomingDay(days, logs, now)
	if !ok {
		return nil, ErrDayNotFound
	}
	return day, nil
}
