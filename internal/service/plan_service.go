package service

import (
	"context"
	"errors"

	"traintrack/training-app/internal/domain"
	"traintrack/training-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound       = errors.New("training plan not found")
	ErrDayNotFound        = errors.New("workout day not found")
	ErrExerciseNotFound   = errors.New("planned exercise not found")
	ErrInvalidPlanPayload = errors.New("invalid training plan payload")
)

// --- Input DTOs ---

type SetInput struct {
	Reps   int               `json:"reps"`
	Weight float64           `json:"weight"`
	Unit   domain.WeightUnit `json:"unit"`
}

type ExerciseInput struct {
	ExerciseID string     `json:"exerciseId,omitempty"`
	Name       string     `json:"name"`
	Sets       []SetInput `json:"sets"`
}

type DayInput struct {
	DayOfWeek domain.DayCode  `json:"dayOfWeek"`
	Split     string          `json:"split,omitempty"`
	Exercises []ExerciseInput `json:"exercises"`
}

type WeekInput struct {
	Number     int        `json:"number"`
	Phase      string     `json:"phase,omitempty"`
	FocusNotes string     `json:"focusNotes,omitempty"`
	Days       []DayInput `json:"days"`
}

// CreatePlanInput carries the variant payload; Days is used by the flat
// variants, Weeks by the powerlifting variant.
type CreatePlanInput struct {
	Name  string          `json:"name"`
	Type  domain.PlanType `json:"type"`
	Days  []DayInput      `json:"days,omitempty"`
	Weeks []WeekInput     `json:"weeks,omitempty"`
}

// UpdateDayInput replaces a day's fields. A nil Exercises leaves the
// existing exercise list untouched.
type UpdateDayInput struct {
	DayOfWeek domain.DayCode  `json:"dayOfWeek,omitempty"`
	Split     *string         `json:"split,omitempty"`
	Exercises []ExerciseInput `json:"exercises,omitempty"`
}

// UpdateExerciseInput patches one planned exercise.
type UpdateExerciseInput struct {
	Name *string    `json:"name,omitempty"`
	Sets []SetInput `json:"sets,omitempty"`
}

// --- Service Interface ---

type PlanService interface {
	CreatePlan(ctx context.Context, userID primitive.ObjectID, input CreatePlanInput) (*domain.TrainingPlan, error)
	GetPlan(ctx context.Context, planID, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	GetMyPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	UpdateDay(ctx context.Context, userID, planID primitive.ObjectID, dayID string, ref domain.DayRef, input UpdateDayInput) (*domain.WorkoutDay, error)
	UpdateExercise(ctx context.Context, userID, planID primitive.ObjectID, dayID, exerciseID string, ref domain.DayRef, input UpdateExerciseInput) (*domain.PlannedExercise, error)
	DeletePlan(ctx context.Context, planID, userID primitive.ObjectID) error
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	planRepo repository.TrainingPlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.TrainingPlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

// CreatePlan validates the variant tag, instantiates the matching shape and
// persists it. This is the single variant dispatch point on the write path;
// everything downstream operates on days uniformly.
func (s *planService) CreatePlan(ctx context.Context, userID primitive.ObjectID, input CreatePlanInput) (*domain.TrainingPlan, error) {
	if userID == primitive.NilObjectID || input.Name == "" {
		return nil, ErrInvalidPlanPayload
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidPlanPayload
	}

	plan := &domain.TrainingPlan{
		UserID: userID,
		Name:   input.Name,
		Type:   input.Type,
	}

	switch {
	case input.Type.Periodized():
		if len(input.Weeks) == 0 || len(input.Days) > 0 {
			return nil, ErrInvalidPlanPayload
		}
		for _, w := range input.Weeks {
			if w.Number <= 0 {
				return nil, ErrInvalidPlanPayload
			}
			days, err := buildDays(w.Days)
			if err != nil {
				return nil, err
			}
			plan.Weeks = append(plan.Weeks, domain.PeriodizationWeek{
				ID:         uuid.NewString(),
				Number:     w.Number,
				Phase:      w.Phase,
				FocusNotes: w.FocusNotes,
				Days:       days,
			})
		}
	default:
		if len(input.Days) == 0 || len(input.Weeks) > 0 {
			return nil, ErrInvalidPlanPayload
		}
		days, err := buildDays(input.Days)
		if err != nil {
			return nil, err
		}
		plan.Days = days
	}

	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// buildDays validates and materializes a day list, assigning stable ids to
// every embedded record.
func buildDays(inputs []DayInput) ([]domain.WorkoutDay, error) {
	days := make([]domain.WorkoutDay, 0, len(inputs))
	for _, d := range inputs {
		if !d.DayOfWeek.Valid() {
			return nil, ErrInvalidPlanPayload
		}
		exercises, err := buildExercises(d.Exercises)
		if err != nil {
			return nil, err
		}
		days = append(days, domain.WorkoutDay{
			ID:        uuid.NewString(),
			DayOfWeek: d.DayOfWeek,
			Split:     d.Split,
			Exercises: exercises,
		})
	}
	return days, nil
}

func buildExercises(inputs []ExerciseInput) ([]domain.PlannedExercise, error) {
	exercises := make([]domain.PlannedExercise, 0, len(inputs))
	for _, e := range inputs {
		if e.Name == "" {
			return nil, ErrInvalidPlanPayload
		}
		sets, err := buildSets(e.Sets)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, domain.PlannedExercise{
			ID:         uuid.NewString(),
			ExerciseID: e.ExerciseID,
			Name:       e.Name,
			Sets:       sets,
		})
	}
	return exercises, nil
}

func buildSets(inputs []SetInput) ([]domain.Set, error) {
	sets := make([]domain.Set, 0, len(inputs))
	for _, st := range inputs {
		if st.Reps <= 0 || st.Weight < 0 || !st.Unit.Valid() {
			return nil, ErrInvalidPlanPayload
		}
		sets = append(sets, domain.Set{Reps: st.Reps, Weight: st.Weight, Unit: st.Unit})
	}
	return sets, nil
}

// GetPlan retrieves a plan, treating "not owned by caller" as not found.
func (s *planService) GetPlan(ctx context.Context, planID, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// GetMyPlans lists the caller's plans.
func (s *planService) GetMyPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

// UpdateDay replaces one day's fields inside any variant. Existing workout
// log snapshots are untouched: they were copied at logging time.
func (s *planService) UpdateDay(ctx context.Context, userID, planID primitive.ObjectID, dayID string, ref domain.DayRef, input UpdateDayInput) (*domain.WorkoutDay, error) {
	plan, err := s.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	day, ok := plan.ResolveDay(dayID, ref)
	if !ok {
		return nil, ErrDayNotFound
	}

	if input.DayOfWeek != "" {
		if !input.DayOfWeek.Valid() {
			return nil, ErrInvalidPlanPayload
		}
		day.DayOfWeek = input.DayOfWeek
	}
	if input.Split != nil {
		day.Split = *input.Split
	}
	if input.Exercises != nil {
		exercises, err := buildExercises(input.Exercises)
		if err != nil {
			return nil, err
		}
		day.Exercises = exercises
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return day, nil
}

// UpdateExercise patches a single planned exercise within a day.
func (s *planService) UpdateExercise(ctx context.Context, userID, planID primitive.ObjectID, dayID, exerciseID string, ref domain.DayRef, input UpdateExerciseInput) (*domain.PlannedExercise, error) {
	plan, err := s.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	day, ok := plan.ResolveDay(dayID, ref)
	if !ok {
		return nil, ErrDayNotFound
	}

	var exercise *domain.PlannedExercise
	for i := range day.Exercises {
		if day.Exercises[i].ID == exerciseID {
			exercise = &day.Exercises[i]
			break
		}
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrInvalidPlanPayload
		}
		exercise.Name = *input.Name
	}
	if input.Sets != nil {
		sets, err := buildSets(input.Sets)
		if err != nil {
			return nil, err
		}
		exercise.Sets = sets
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// DeletePlan removes a plan owned by the caller.
func (s *planService) DeletePlan(ctx context.Context, planID, userID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}
