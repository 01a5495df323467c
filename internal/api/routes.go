package api

import (
	"net/http"

	"traintrack/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	assignmentService service.AssignmentService,
	workoutService service.WorkoutService,
	statsService service.StatsService,
) {
	planHandler := NewPlanHandler(planService)
	assignmentHandler := NewAssignmentHandler(assignmentService)
	workoutHandler := NewWorkoutHandler(workoutService)
	statsHandler := NewStatsHandler(statsService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(authMiddleware)
	{
		// --- Training Plan Routes ---
		planGroup := apiV1.Group("/training-plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetMyPlans)
			planGroup.PUT("/:planId/days/:dayId", planHandler.UpdateDay)
			planGroup.PATCH("/:planId/days/:dayId/exercises/:exerciseId", planHandler.UpdateExercise)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
		}

		// --- Assignment Routes ---
		assignmentGroup := apiV1.Group("/trainingplan-assignments")
		{
			assignmentGroup.POST("", assignmentHandler.CreateAssignment)
			assignmentGroup.GET("/active", assignmentHandler.GetActiveAssignment)
			assignmentGroup.DELETE("/:planId", assignmentHandler.DeactivateAssignment)
		}

		// --- Workout Log Routes ---
		workoutGroup := apiV1.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.LogWorkout)
			workoutGroup.GET("", workoutHandler.GetLogs)
			// Fixed paths before the wildcard so gin does not shadow them.
			workoutGroup.GET("/next-skipped", workoutHandler.NextSkipped)
			workoutGroup.GET("/next-upcoming", workoutHandler.NextUpcoming)
			workoutGroup.DELETE("/:workoutId", workoutHandler.DeleteLog)
		}

		// --- Stats Routes ---
		statsGroup := apiV1.Group("/stats")
		{
			statsGroup.GET("", statsHandler.GetWeeklyStats)
			statsGroup.GET("/progress", statsHandler.GetProgressStats)
		}
	}
}
