// Package dashboard assembles the landing-page summary: daily intake versus
// targets, weight trend and workout consistency.
package dashboard

import (
	"context"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/domain/models"
)

// DiaryReader provides the day's log (created lazily when missing).
type DiaryReader interface {
	GetLog(ctx context.Context, userID primitive.ObjectID, date time.Time) (*models.DailyLog, error)
}

// UserLookup resolves accounts.
type UserLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// WorkoutStats provides the aggregate workout queries the dashboard needs.
type WorkoutStats interface {
	CountSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error)
	ExistsOnDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (bool, error)
}

// Header is the top card of the dashboard.
type Header struct {
	CalorieTarget    float64 `json:"calorieTarget"`
	CaloriesConsumed float64 `json:"caloriesConsumed"`
	ProfileName      string  `json:"profileName"`
}

// Weight summarizes the current weight and its change over the last week.
type Weight struct {
	Current float64 `json:"current"`
	Change  float64 `json:"change"`
	Trend   string  `json:"trend"` // "up", "down" or "neutral"
}

// DailySummary carries the day's totals and meal details.
type DailySummary struct {
	Totals models.NutritionalValues `json:"totals"`
	Meals  models.Meals             `json:"logDetails"`
}

// WorkoutSummary reports weekly workout consistency.
type WorkoutSummary struct {
	WorkoutsCompleted int64  `json:"workoutsCompleted"`
	Target            int    `json:"target"`
	NextWorkout       string `json:"nextWorkout"`
}

// Data is the full dashboard payload.
type Data struct {
	Header         Header         `json:"headerData"`
	Weight         Weight         `json:"weightData"`
	DailySummary   DailySummary   `json:"dailySummary"`
	WorkoutSummary WorkoutSummary `json:"workoutSummary"`
}

// weeklyWorkoutTarget is fixed for now; a per-user target belongs in the
// profile once the client exposes it.
const weeklyWorkoutTarget = 3

// Service assembles dashboard data from the other components.
type Service struct {
	diary    DiaryReader
	users    UserLookup
	workouts WorkoutStats
	logger   *zap.Logger
}

// NewService wires a dashboard service instance.
func NewService(diary DiaryReader, users UserLookup, workouts WorkoutStats, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{diary: diary, users: users, workouts: workouts, logger: logger}
}

// Get builds the dashboard for the user on the given date.
func (s *Service) Get(ctx context.Context, userID primitive.ObjectID, date time.Time) (*Data, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	log, err := s.diary.GetLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	workoutsCompleted, err := s.workouts.CountSince(ctx, userID, startOfWeek(date))
	if err != nil {
		return nil, err
	}

	hasWorkoutToday, err := s.workouts.ExistsOnDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	nextWorkout := "Plan for tomorrow"
	if hasWorkoutToday {
		nextWorkout = "Done today!"
	}

	return &Data{
		Header: Header{
			CalorieTarget:    user.Profile.DailyCalorieTarget,
			CaloriesConsumed: log.Totals.Calories,
			ProfileName:      user.FullName,
		},
		Weight:       weightTrend(user, date),
		DailySummary: DailySummary{Totals: log.Totals, Meals: log.Meals},
		WorkoutSummary: WorkoutSummary{
			WorkoutsCompleted: workoutsCompleted,
			Target:            weeklyWorkoutTarget,
			NextWorkout:       nextWorkout,
		},
	}, nil
}

// weightTrend compares the latest weight entry against the most recent entry
// at least one week old.
func weightTrend(user *models.User, now time.Time) Weight {
	weight := Weight{Current: user.Profile.Weight, Trend: "neutral"}
	if len(user.WeightHistory) == 0 {
		return weight
	}

	history := make([]models.WeightEntry, len(user.WeightHistory))
	copy(history, user.WeightHistory)
	sort.Slice(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})

	weight.Current = history[0].Weight

	oneWeekAgo := now.AddDate(0, 0, -7)
	for _, entry := range history {
		if entry.Date.After(oneWeekAgo) {
			continue
		}
		diff := weight.Current - entry.Weight
		weight.Change = math.Round(diff*10) / 10
		switch {
		case diff > 0:
			weight.Trend = "up"
		case diff < 0:
			weight.Trend = "down"
		}
		break
	}
	return weight
}

// startOfWeek truncates to the preceding Sunday at midnight.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
