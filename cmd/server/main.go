package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traintrack/training-app/internal/api"
	"traintrack/training-app/internal/config"
	"traintrack/training-app/internal/repository/mongo"
	"traintrack/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}
	logrus.WithField("address", cfg.Server.Address).Info("starting training plan server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logrus.Info("database connection established")

	// --- Ensure Indexes ---
	// The unique workout-log index is the one-log-per-day guarantee, so it
	// must exist before the server takes writes.
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 1*time.Minute)
	mongo.EnsureTrainingPlanIndexes(indexCtx, appDB.Collection("training_plans"))
	mongo.EnsureAssignmentIndexes(indexCtx, appDB.Collection("trainingplan_assignments"))
	mongo.EnsureWorkoutLogIndexes(indexCtx, appDB.Collection("workout_logs"))
	indexCancel()
	logrus.Info("database indexes ensured")

	// --- Initialize Repositories ---
	planRepo := mongo.NewMongoTrainingPlanRepository(appDB)
	assignmentRepo := mongo.NewMongoAssignmentRepository(appDB)
	logRepo := mongo.NewMongoWorkoutLogRepository(appDB)

	// --- Initialize Services ---
	planService := service.NewPlanService(planRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, planRepo)
	workoutService := service.NewWorkoutService(logRepo, planRepo, assignmentRepo)
	statsService := service.NewStatsService(logRepo, planRepo, assignmentRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, planService, assignmentService, workoutService, statsService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("listen and serve error")
		}
	}()
	logrus.WithField("address", cfg.Server.Address).Info("server started")

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}
