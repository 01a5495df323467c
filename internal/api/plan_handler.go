package api

import (
	"errors"
	"net/http"
	"strconv"

	"traintrack/training-app/internal/domain"
	"traintrack/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// weekRefFromQuery reads the optional week selector for periodized plans.
func weekRefFromQuery(c *gin.Context) domain.DayRef {
	ref := domain.DayRef{WeekID: c.Query("weekId")}
	if n, err := strconv.Atoi(c.Query("weekNumber")); err == nil && n > 0 {
		ref.WeekNumber = n
	}
	return ref
}

// CreatePlan handles POST /training-plans.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var input service.CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlanPayload) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create training plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetMyPlans handles GET /training-plans.
func (h *PlanHandler) GetMyPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	plans, err := h.planService.GetMyPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve training plans.")
		return
	}
	if plans == nil {
		plans = []domain.TrainingPlan{} // Return empty JSON array, not null
	}

	c.JSON(http.StatusOK, plans)
}

// UpdateDay handles PUT /training-plans/:planId/days/:dayId.
func (h *PlanHandler) UpdateDay(c *gin.Context) {
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

	var input service.UpdateDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.planService.UpdateDay(c.Request.Context(), userID, planID, c.Param("dayId"), weekRefFromQuery(c), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrDayNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidPlanPayload):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout day.")
		}
		return
	}

	c.JSON(http.StatusOK, day)
}

// UpdateExercise handles PATCH /training-plans/:planId/days/:dayId/exercises/:exerciseId.
func (h *PlanHandler) UpdateExercise(c *gin.Context) {
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

	var input service.UpdateExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.planService.UpdateExercise(
		c.Request.Context(), userID, planID,
		c.Param("dayId"), c.Param("exerciseId"),
		weekRefFromQuery(c), input,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound),
			errors.Is(err, service.ErrDayNotFound),
			errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidPlanPayload):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// DeletePlan handles DELETE /training-plans/:planId.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
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

	if err := h.planService.DeletePlan(c.Request.Context(), planID, userID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete training plan.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "training plan deleted"})
}
