// Package users manages profile data: body metrics, daily targets, weight
// history and UI preference.
package users

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/domain/models"
)

// Repository is the account persistence contract needed here.
type Repository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ProfileUpdate carries the optional profile fields of an update request.
type ProfileUpdate struct {
	Weight             *float64 `json:"weight,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	Age                *int     `json:"age,omitempty"`
	Gender             *string  `json:"gender,omitempty"`
	DailyCalorieTarget *float64 `json:"dailyCalorieTarget,omitempty"`
	DailyProteinTarget *float64 `json:"dailyProteinTarget,omitempty"`
	DailyCarbTarget    *float64 `json:"dailyCarbTarget,omitempty"`
	DailyFatTarget     *float64 `json:"dailyFatTarget,omitempty"`
	Theme              *string  `json:"theme,omitempty"`
}

// Service implements profile operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a users service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// GetProfile loads the user's account including profile and weight history.
func (s *Service) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the provided fields. A changed weight is also
// appended to the weight history; an unchanged weight leaves the history
// alone to avoid duplicate entries.
func (s *Service) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Weight != nil {
		newWeight := math.Round(*update.Weight*10) / 10
		if user.Profile.Weight != newWeight {
			user.WeightHistory = append(user.WeightHistory, models.WeightEntry{
				Weight: newWeight,
				Date:   time.Now(),
			})
			user.Profile.Weight = newWeight
		}
	}

	if update.Height != nil {
		user.Profile.Height = *update.Height
	}
	if update.Age != nil {
		user.Profile.Age = *update.Age
	}
	if update.Gender != nil {
		user.Profile.Gender = *update.Gender
	}
	if update.DailyCalorieTarget != nil {
		user.Profile.DailyCalorieTarget = *update.DailyCalorieTarget
	}
	if update.DailyProteinTarget != nil {
		user.Profile.DailyProteinTarget = *update.DailyProteinTarget
	}
	if update.DailyCarbTarget != nil {
		user.Profile.DailyCarbTarget = *update.DailyCarbTarget
	}
	if update.DailyFatTarget != nil {
		user.Profile.DailyFatTarget = *update.DailyFatTarget
	}
	if update.Theme != nil {
		user.Profile.Theme = *update.Theme
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
