package repository

import (
	"context"
	"time"

	"traintrack/training-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TrainingPlanRepository defines the interface for interacting with training plan data.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// AssignmentRepository defines the interface for interacting with plan assignment data.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.PlanAssignment) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanAssignment, error)
	FindActive(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.PlanAssignment, error)
	DeleteByUserAndPlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

// WorkoutLogRepository defines the interface for interacting with workout log data.
// Create must return ErrDuplicate when the (user, plan, performed-date)
// uniqueness constraint is violated.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]domain.WorkoutLog, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
