package mongo

import (
	"context"
	"errors"
	"time"

	"traintrack/training-app/internal/domain"
	"traintrack/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new WorkoutLog repository backed by MongoDB.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Create inserts a new workout log. PerformedAt must already be normalized
// to midnight UTC so the unique (userId, trainingPlanId, performedAt)
// index is the actual one-log-per-day guarantee; a duplicate key error is
// reported as repository.ErrDuplicate.
func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.TrainingPlanID == primitive.NilObjectID || log.WorkoutDayID == "" {
		return primitive.NilObjectID, errors.New("workout log requires userId, trainingPlanId and workoutDayId")
	}

	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a workout log by its ID.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByUserID retrieves a user's logs sorted by performed date descending,
// optionally bounded to [from, to].
func (r *mongoWorkoutLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]domain.WorkoutLog, error) {
	filter := bson.M{"userId": userID}
	if from != nil || to != nil {
		bounds := bson.M{}
		if from != nil {
			bounds["$gte"] = *from
		}
		if to != nil {
			bounds["$lte"] = *to
		}
		filter["performedAt"] = bounds
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "performedAt", Value: -1}})

	var logs []domain.WorkoutLog
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// Delete removes a log only when it belongs to the given user.
func (r *mongoWorkoutLogRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if id == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("log ID and user ID are required for deletion")
	}

	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutLogIndexes creates necessary indexes for the workout logs
// collection. The unique compound index is the storage-level enforcement
// of the one-log-per-plan-per-day invariant; concurrent duplicate inserts
// resolve to one success and one ErrDuplicate.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "trainingPlanId", Value: 1},
				{Key: "performedAt", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// History listing, newest first.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "performedAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
