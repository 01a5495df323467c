package service

import (
	"context"
	"time"

	"traintrack/training-app/internal/domain"
	"traintrack/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklySummary is the GET /stats payload.
type WeeklySummary struct {
	WeeklyVolume      float64 `json:"weeklyVolume"`
	PlannedDays       int     `json:"plannedDays"`
	CompletedThisWeek int     `json:"completedThisWeek"`
	Remaining         int     `json:"remaining"`
	GoalMessage       string  `json:"goalMessage"`
	Streak            int     `json:"streak"`
	LastSplit         string  `json:"lastSplit,omitempty"`
	NextSplit         string  `json:"nextSplit,omitempty"`
}

// ProgressSummary is the GET /stats/progress payload.
type ProgressSummary struct {
	ThisWeekVolume  float64          `json:"thisWeekVolume"`
	LastWeekVolume  float64          `json:"lastWeekVolume"`
	ChangePercent   string           `json:"changePercent"`
	PersonalRecords []PersonalRecord `json:"personalRecords"`
}

// --- Service Interface ---

type StatsService interface {
	WeeklyStats(ctx context.Context, userID primitive.ObjectID, now time.Time) (*WeeklySummary, error)
	ProgressStats(ctx context.Context, userID primitive.ObjectID, now time.Time) (*ProgressSummary, error)
}

// --- Service Implementation ---

// statsService derives all analytics from the active assignment, its plan
// and the user's log history. No hidden state.
type statsService struct {
	logRepo        repository.WorkoutLogRepository
	planRepo       repository.TrainingPlanRepository
	assignmentRepo repository.AssignmentRepository
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(
	logRepo repository.WorkoutLogRepository,
	planRepo repository.TrainingPlanRepository,
	assignmentRepo repository.AssignmentRepository,
) StatsService {
	return &statsService{
		logRepo:        logRepo,
		planRepo:       planRepo,
		assignmentRepo: assignmentRepo,
	}
}

// WeeklyStats computes the weekly volume, goal projection, streak and the
// last/next split labels.
func (s *statsService) WeeklyStats(ctx context.Context, userID primitive.ObjectID, now time.Time) (*WeeklySummary, error) {
	plan, days, logs, err := activeHorizon(ctx, s.assignmentRepo, s.planRepo, s.logRepo, userID, now)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := weekBounds(now)
	planned := plannedDayCount(days)
	completed := logsBetween(logs, weekStart, weekEnd)
	remaining := remainingGoal(planned, completed)

	summary := &WeeklySummary{
		WeeklyVolume:      volumeBetween(logs, weekStart, weekEnd),
		PlannedDays:       planned,
		CompletedThisWeek: completed,
		Remaining:         remaining,
		GoalMessage:       goalMessage(remaining),
		Streak:            streak(logs, now),
	}

	// Last split: most recent log's day id resolved back into the plan,
	// falling back to the split stored on the log if the day was removed.
	if len(logs) > 0 {
		if day, ok := plan.ResolveDay(logs[0].WorkoutDayID, domain.DayRef{}); ok {
			summary.LastSplit = day.Split
		} else {
			summary.LastSplit = logs[0].Split
		}
	}

	// Next split: only meaningful while the weekly goal is unmet.
	if remaining > 0 {
		if day, ok := nextSkippedDay(days, logs); ok {
			summary.NextSplit = day.Split
		}
	}

	return summary, nil
}

// ProgressStats computes the week-over-week volume delta and the per
// exercise personal records.
func (s *statsService) ProgressStats(ctx context.Context, userID primitive.ObjectID, now time.Time) (*ProgressSummary, error) {
	_, _, logs, err := activeHorizon(ctx, s.assignmentRepo, s.planRepo, s.logRepo, userID, now)
	if err != nil {
		return nil, err
	}

	thisStart, thisEnd := weekBounds(now)
	lastStart, lastEnd := weekBounds(thisStart.AddDate(0, 0, -1))

	thisWeek := volumeBetween(logs, thisStart, thisEnd)
	lastWeek := volumeBetween(logs, lastStart, lastEnd)

	return &ProgressSummary{
		ThisWeekVolume:  thisWeek,
		LastWeekVolume:  lastWeek,
		ChangePercent:   changePercent(thisWeek, lastWeek),
		PersonalRecords: personalRecords(logs),
	}, nil
}
