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

const assignmentCollectionName = "trainingplan_assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new PlanAssignment repository backed by MongoDB.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// Create inserts a new plan assignment. The non-overlap invariant is
// checked at the service layer before this insert.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.PlanAssignment) (primitive.ObjectID, error) {
	if assignment.UserID == primitive.NilObjectID || assignment.TrainingPlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assignment requires userId and trainingPlanId")
	}
	if assignment.StartDate.IsZero() {
		return primitive.NilObjectID, errors.New("assignment requires a start date")
	}

	assignment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted assignment ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves all assignments for a user, newest start date first.
func (r *mongoAssignmentRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanAssignment, error) {
	var assignments []domain.PlanAssignment
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindActive returns the assignment whose interval contains the given date:
// startDate <= date and (endDate absent or endDate >= date).
func (r *mongoAssignmentRepository) FindActive(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.PlanAssignment, error) {
	day := domain.StartOfDay(date)
	filter := bson.M{
		"userId":    userID,
		"startDate": bson.M{"$lte": domain.EndOfDay(date)},
		"$or": []bson.M{
			{"endDate": bson.M{"$exists": false}},
			{"endDate": nil},
			{"endDate": bson.M{"$gte": day}},
		},
	}

	var assignment domain.PlanAssignment
	err := r.collection.FindOne(ctx, filter).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// DeleteByUserAndPlan removes the assignment binding a plan to a user,
// enabling a later re-activation.
func (r *mongoAssignmentRepository) DeleteByUserAndPlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || planID == primitive.NilObjectID {
		return errors.New("user ID and plan ID are required for deactivation")
	}

	filter := bson.M{"userId": userID, "trainingPlanId": planID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAssignmentIndexes creates necessary indexes for the assignments collection.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Active-assignment lookup: user + interval bounds.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index(),
		},
		{
			// Deactivation lookup by user + plan.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "trainingPlanId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
