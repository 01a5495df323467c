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
	ErrAssignmentOverlap  = errors.New("an assignment already covers part of this interval")
	ErrAssignmentNotFound = errors.New("plan assignment not found")
	ErrInvalidInterval    = errors.New("assignment end date precedes its start date")
)

// ActiveAssignment pairs an assignment with its populated plan.
type ActiveAssignment struct {
	Assignment domain.PlanAssignment `json:"assignment"`
	Plan       domain.TrainingPlan   `json:"plan"`
}

// --- Service Interface ---

type AssignmentService interface {
	Create(ctx context.Context, userID, planID primitive.ObjectID, start time.Time, end *time.Time) (*domain.PlanAssignment, error)
	FindActive(ctx context.Context, userID primitive.ObjectID, date time.Time) (*ActiveAssignment, error)
	Deactivate(ctx context.Context, userID, planID primitive.ObjectID) error
}

// --- Service Implementation ---

// assignmentService implements the AssignmentService interface.
type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	planRepo       repository.TrainingPlanRepository
}

// NewAssignmentService creates a new instance of assignmentService.
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	planRepo repository.TrainingPlanRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
	}
}

// Create binds a plan to the user over [start, end]. The interval is tested
// against every existing assignment of the user with inclusive comparisons
// on both ends, so an assignment ending on day X conflicts with one
// starting on day X. The check and the insert are separate operations; the
// storage layer has no interval-exclusion constraint, so this loop is the
// only enforcement of the invariant.
func (s *assignmentService) Create(ctx context.Context, userID, planID primitive.ObjectID, start time.Time, end *time.Time) (*domain.PlanAssignment, error) {
	if userID == primitive.NilObjectID || planID == primitive.NilObjectID {
		return nil, errors.New("user ID and plan ID are required")
	}
	if end != nil && domain.StartOfDay(*end).Before(domain.StartOfDay(start)) {
		return nil, ErrInvalidInterval
	}

	// 1. The plan must exist and belong to the caller.
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

	// 2. Overlap test against every existing assignment of this user.
	existing, err := s.assignmentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Overlaps(start, end) {
			return nil, ErrAssignmentOverlap
		}
	}

	// 3. Persist.
	assignment := &domain.PlanAssignment{
		UserID:         userID,
		TrainingPlanID: planID,
		StartDate:      domain.StartOfDay(start),
	}
	if end != nil {
		e := domain.StartOfDay(*end)
		assignment.EndDate = &e
	}

	if _, err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// FindActive answers "what plan is active for this user on this date" and
// populates the referenced plan.
func (s *assignmentService) FindActive(ctx context.Context, userID primitive.ObjectID, date time.Time) (*ActiveAssignment, error) {
	assignment, err := s.assignmentRepo.FindActive(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, assignment.TrainingPlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Assignment points at a deleted plan; treat as no active plan.
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	return &ActiveAssignment{Assignment: *assignment, Plan: *plan}, nil
}

// Deactivate closes the binding between the user and the plan.
func (s *assignmentService) Deactivate(ctx context.Context, userID, planID primitive.ObjectID) error {
	err := s.assignmentRepo.DeleteByUserAndPlan(ctx, userID, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAssignmentNotFound
	}
	return err
}
