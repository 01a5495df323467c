package api

import (
	"errors"
	"net/http"
	"time"

	"traintrack/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// CreateAssignmentRequest defines the payload for activating a plan.
type CreateAssignmentRequest struct {
	PlanID    string     `json:"planId" binding:"required"`
	StartDate time.Time  `json:"startDate" binding:"required"`
	EndDate   *time.Time `json:"endDate"` // absent = open-ended
}

// CreateAssignment handles POST /trainingplan-assignments.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req CreateAssignmentRequest
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

	assignment, err := h.assignmentService.Create(c.Request.Context(), userID, planID, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAssignmentOverlap):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidInterval):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create assignment.")
		}
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GetActiveAssignment handles GET /trainingplan-assignments/active?date=ISO.
// The date defaults to today.
func (h *AssignmentHandler) GetActiveAssignment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date: expected YYYY-MM-DD or RFC 3339.")
			return
		}
		date = parsed
	}

	active, err := h.assignmentService.FindActive(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to look up active assignment.")
		}
		return
	}

	c.JSON(http.StatusOK, active)
}

// DeactivateAssignment handles DELETE /trainingplan-assignments/:planId.
func (h *AssignmentHandler) DeactivateAssignment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	if err := h.assignmentService.Deactivate(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to deactivate assignment.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment deactivated"})
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
