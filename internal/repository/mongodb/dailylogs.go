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

// DailyLogRepository stores one log document per user per calendar day.
type DailyLogRepository struct {
	coll *mongo.Collection
}

// NewDailyLogRepository builds the repository and ensures the unique
// (userId, date) index that guarantees a single log per user and day.
func NewDailyLogRepository(ctx context.Context, c *Client) (*DailyLogRepository, error) {
	coll := c.db.Collection("daily_logs")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create daily_logs index: %w", err)
	}

	return &DailyLogRepository{coll: coll}, nil
}

// FindByUserAndDay loads the log whose date falls inside the calendar day
// starting at day. Returns errvalues.ErrLogNotFound when none exists.
func (r *DailyLogRepository) FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (*models.DailyLog, error) {
	start, end := dayWindow(day)
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start, "$lte": end},
	}

	var log models.DailyLog
	err := r.coll.FindOne(ctx, filter).Decode(&log)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errvalues.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find daily log: %w", err)
	}
	return &log, nil
}

// Save replaces the whole log document in one write, inserting it when it
// does not exist yet. Whole-document replacement is what keeps concurrent
// read-modify-write cycles from leaving totals inconsistent with items.
func (r *DailyLogRepository) Save(ctx context.Context, log *models.DailyLog) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": log.ID}, log, opts); err != nil {
		return fmt.Errorf("save daily log: %w", err)
	}
	return nil
}

// FindByDay returns every user's log for the given calendar day, used by the
// summary export job.
func (r *DailyLogRepository) FindByDay(ctx context.Context, day time.Time) ([]models.DailyLog, error) {
	start, end := dayWindow(day)
	filter := bson.M{"date": bson.M{"$gte": start, "$lte": end}}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find daily logs by day: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []models.DailyLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode daily logs: %w", err)
	}
	return logs, nil
}

// dayWindow bounds a calendar day the same way the diary does:
// [00:00:00.000, 23:59:59.999].
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
