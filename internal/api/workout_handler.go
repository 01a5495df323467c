package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"traintrack/training-app/internal/domain"
	"traintrack/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// LogWorkoutRequest defines the payload for logging a performed day.
type LogWorkoutRequest struct {
	PlanID      string                        `json:"planId" binding:"required"`
	DayID       string                        `json:"dayId" binding:"required"`
	PerformedAt *time.Time                    `json:"performedAt"` // defaults to today
	WeekID      string                        `json:"weekId,omitempty"`
	WeekNumber  int                           `json:"weekNumber,omitempty"`
	Actual      []service.ActualExerciseInput `json:"actual"`
}

// WorkoutLogResponse is the DTO for returning a log entry.
type WorkoutLogResponse struct {
	ID          string                  `json:"id"`
	PlanID      string                  `json:"planId"`
	DayID       string                  `json:"dayId"`
	PerformedAt time.Time               `json:"performedAt"`
	DayOfWeek   domain.DayCode          `json:"dayOfWeek"`
	Split       string                  `json:"split,omitempty"`
	Planned     []domain.LoggedExercise `json:"planned"`
	Actual      []domain.LoggedExercise `json:"actual"`
}

// MapWorkoutLogToResponse converts domain.WorkoutLog to WorkoutLogResponse.
func MapWorkoutLogToResponse(l *domain.WorkoutLog) WorkoutLogResponse {
	return WorkoutLogResponse{
		ID:          l.ID.Hex(),
		PlanID:      l.TrainingPlanID.Hex(),
		DayID:       l.WorkoutDayID,
		PerformedAt: l.PerformedAt,
		DayOfWeek:   l.DayOfWeek,
		Split:       l.Split,
		Planned:     l.Planned,
		Actual:      l.Actual,
	}
}

// MapWorkoutLogsToResponse converts a slice of domain.WorkoutLog.
func MapWorkoutLogsToResponse(logs []domain.WorkoutLog) []WorkoutLogResponse {
	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapWorkoutLogToResponse(&logs[i])
	}
	return responses
}

// LogWorkout handles POST /workouts.
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	input := service.LogWorkoutInput{
		PlanID:  planID,
		DayID:   req.DayID,
		WeekRef: domain.DayRef{WeekID: req.WeekID, WeekNumber: req.WeekNumber},
		Actual:  req.Actual,
	}
	if req.PerformedAt != nil {
		input.PerformedAt = *req.PerformedAt
	}

	log, err := h.workoutService.LogWorkout(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrDayNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrLogAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidLogInput):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to log workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutLogToResponse(log))
}

// GetLogs handles GET /workouts?date=ISO.
func (h *WorkoutHandler) GetLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date: expected YYYY-MM-DD or RFC 3339.")
			return
		}
		date = &parsed
	}

	logs, err := h.workoutService.GetLogs(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout logs.")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutLogsToResponse(logs))
}

// DeleteLog handles DELETE /workouts/:workoutId.
func (h *WorkoutHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout log ID format.")
		return
	}

	if err := h.workoutService.DeleteLog(c.Request.Context(), logID, userID); err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete workout log.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workout log deleted"})
}

// NextSkipped handles GET /workouts/next-skipped.
func (h *WorkoutHandler) NextSkipped(c *gin.Context) {
	h.nextDay(c, h.workoutService.NextSkippedDay)
}

// NextUpcoming handles GET /workouts/next-upcoming.
func (h *WorkoutHandler) NextUpcoming(c *gin.Context) {
	h.nextDay(c, h.workoutService.NextUpcomingDay)
}

func (h *WorkoutHandler) nextDay(
	c *gin.Context,
	lookup func(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.WorkoutDay, error),
) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	day, err := lookup(c.Request.Context(), userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActivePlan), errors.Is(err, service.ErrDayNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve next workout day.")
		}
		return
	}

	c.JSON(http.StatusOK, day)
}
