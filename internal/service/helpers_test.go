package service

import (
	"context"
	"sort"
	"time"

	"traintrack/training-app/internal/domain"
	"traintrack/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the mongo implementations'
// observable behavior, including the unique (user, plan, performed-date)
// constraint on workout logs.

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.TrainingPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	stored := *plan
	r.plans[plan.ID] = &stored
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	var plans []domain.TrainingPlan
	for _, p := range r.plans {
		if p.UserID == userID {
			plans = append(plans, *p)
		}
	}
	return plans, nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.TrainingPlan) error {
	stored, ok := r.plans[plan.ID]
	if !ok || stored.UserID != plan.UserID {
		return repository.ErrNotFound
	}
	copied := *plan
	copied.UpdatedAt = time.Now().UTC()
	r.plans[plan.ID] = &copied
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	stored, ok := r.plans[id]
	if !ok || stored.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments []domain.PlanAssignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *domain.PlanAssignment) (primitive.ObjectID, error) {
	assignment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	r.assignments = append(r.assignments, *assignment)
	return assignment.ID, nil
}

func (r *fakeAssignmentRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.PlanAssignment, error) {
	var out []domain.PlanAssignment
	for _, a := range r.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) FindActive(_ context.Context, userID primitive.ObjectID, date time.Time) (*domain.PlanAssignment, error) {
	for i := range r.assignments {
		a := r.assignments[i]
		if a.UserID == userID && a.Contains(date) {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAssignmentRepo) DeleteByUserAndPlan(_ context.Context, userID, planID primitive.ObjectID) error {
	for i, a := range r.assignments {
		if a.UserID == userID && a.TrainingPlanID == planID {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeLogRepo struct {
	logs []domain.WorkoutLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{}
}

func (r *fakeLogRepo) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	for _, existing := range r.logs {
		if existing.UserID == log.UserID &&
			existing.TrainingPlanID == log.TrainingPlanID &&
			existing.PerformedAt.Equal(log.PerformedAt) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()
	r.logs = append(r.logs, *log)
	return log.ID, nil
}

func (r *fakeLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	for i := range r.logs {
		if r.logs[i].ID == id {
			copied := r.logs[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeLogRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, from, to *time.Time) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, l := range r.logs {
		if l.UserID != userID {
			continue
		}
		if from != nil && l.PerformedAt.Before(*from) {
			continue
		}
		if to != nil && l.PerformedAt.After(*to) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PerformedAt.After(out[j].PerformedAt)
	})
	return out, nil
}

func (r *fakeLogRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i, l := range r.logs {
		if l.ID == id && l.UserID == userID {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- shared builders ---

func dateUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func flatPlanInput(dayCount int) CreatePlanInput {
	input := CreatePlanInput{
		Name: "Hypertrophy Block",
		Type: domain.PlanTypeBodybuilding,
	}
	codes := []domain.DayCode{domain.DayMon, domain.DayTue, domain.DayWed, domain.DayThu, domain.DayFri}
	splits := []string{"PUSH", "PULL", "LEGS", "UPPER", "LOWER"}
	for i := 0; i < dayCount; i++ {
		input.Days = append(input.Days, DayInput{
			DayOfWeek: codes[i%len(codes)],
			Split:     splits[i%len(splits)],
			Exercises: []ExerciseInput{
				{
					Name: "Bench Press",
					Sets: []SetInput{
						{Reps: 10, Weight: 100, Unit: domain.UnitKg},
						{Reps: 8, Weight: 80, Unit: domain.UnitKg},
					},
				},
			},
		})
	}
	return input
}
