package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
)

// WorkoutRepository stores training sessions.
type WorkoutRepository struct {
	coll *mongo.Collection
}

// NewWorkoutRepository builds the repository and ensures the (userId, date)
// lookup index.
func NewWorkoutRepository(ctx context.Context, c *Client) (*WorkoutRepository, error) {
	coll := c.db.Collection("workouts")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create workouts index: %w", err)
	}

	return &WorkoutRepository{coll: coll}, nil
}

// FindByUserAndDay returns the user's workouts for one calendar day ordered
// by creation time.
func (r *WorkoutRepository) FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day time.Time) ([]models.Workout, error) {
	start, end := dayWindow(day)
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}
	defer cursor.Close(ctx)

	var workouts []models.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}
	return workouts, nil
}

// FindByUserAndID loads one workout, scoped to its owner.
func (r *WorkoutRepository) FindByUserAndID(ctx context.Context, userID, workoutID primitive.ObjectID) (*models.Workout, error) {
	var workout models.Workout
	err := r.coll.FindOne(ctx, bson.M{"_id": workoutID, "userId": userID}).Decode(&workout)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errvalues.ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find workout: %w", err)
	}
	return &workout, nil
}

// Insert stores a new workout and backfills the generated id.
func (r *WorkoutRepository) Insert(ctx context.Context, workout *models.Workout) error {
	res, err := r.coll.InsertOne(ctx, workout)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		workout.ID = id
	}
	return nil
}

// Update replaces the stored workout document.
func (r *WorkoutRepository) Update(ctx context.Context, workout *models.Workout) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": workout.ID, "userId": workout.UserID}, workout)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	if res.MatchedCount == 0 {
		return errvalues.ErrWorkoutNotFound
	}
	return nil
}

// Delete removes a workout owned by the user.
func (r *WorkoutRepository) Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": workoutID, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if res.DeletedCount == 0 {
		return errvalues.ErrWorkoutNotFound
	}
	return nil
}

// CountSince counts the user's workouts with a date at or after since.
func (r *WorkoutRepository) CountSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return count, nil
}

// ExistsOnDay reports whether the user logged any workout on the given day.
func (r *WorkoutRepository) ExistsOnDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (bool, error) {
	start, end := dayWindow(day)
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start, "$lte": end},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check workout day: %w", err)
	}
	return count > 0, nil
}
