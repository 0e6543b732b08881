// Package workouts manages training sessions: day-scoped listing and
// owner-checked CRUD.
package workouts

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
)

// Repository is the workout persistence contract.
type Repository interface {
	FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day time.Time) ([]models.Workout, error)
	FindByUserAndID(ctx context.Context, userID, workoutID primitive.ObjectID) (*models.Workout, error)
	Insert(ctx context.Context, workout *models.Workout) error
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error
}

// CreateInput carries the fields of a new session.
type CreateInput struct {
	Date      time.Time         `json:"date"`
	Name      string            `json:"name"`
	Duration  int               `json:"duration"`
	Exercises []models.Exercise `json:"exercises"`
}

// UpdateInput carries the editable fields of an existing session.
type UpdateInput struct {
	Date      *time.Time        `json:"date,omitempty"`
	Name      *string           `json:"name,omitempty"`
	Duration  *int              `json:"duration,omitempty"`
	Exercises []models.Exercise `json:"exercises,omitempty"`
}

// Service implements workout operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a workouts service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// GetByDate returns the user's sessions for one calendar day.
func (s *Service) GetByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]models.Workout, error) {
	return s.repo.FindByUserAndDay(ctx, userID, date)
}

// Create stores a new session for the user.
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, input CreateInput) (*models.Workout, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: workout name is required", errvalues.ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: workout date is required", errvalues.ErrInvalidInput)
	}
	if input.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", errvalues.ErrInvalidInput)
	}
	if err := validateExercises(input.Exercises); err != nil {
		return nil, err
	}

	now := time.Now()
	workout := &models.Workout{
		UserID:    userID,
		Date:      input.Date,
		Name:      input.Name,
		Duration:  input.Duration,
		Exercises: input.Exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Update edits a session. Ownership is enforced by loading through the
// (user, id) pair, so touching another user's workout surfaces as not found.
func (s *Service) Update(ctx context.Context, userID, workoutID primitive.ObjectID, input UpdateInput) (*models.Workout, error) {
	workout, err := s.repo.FindByUserAndID(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: workout name must not be empty", errvalues.ErrInvalidInput)
		}
		workout.Name = *input.Name
	}
	if input.Duration != nil {
		if *input.Duration < 0 {
			return nil, fmt.Errorf("%w: duration must not be negative", errvalues.ErrInvalidInput)
		}
		workout.Duration = *input.Duration
	}
	if input.Exercises != nil {
		if err := validateExercises(input.Exercises); err != nil {
			return nil, err
		}
		workout.Exercises = input.Exercises
	}
	if input.Date != nil {
		workout.Date = *input.Date
	}

	workout.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Delete removes a session owned by the user.
func (s *Service) Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	return s.repo.Delete(ctx, userID, workoutID)
}

func validateExercises(exercises []models.Exercise) error {
	for _, ex := range exercises {
		if ex.Name == "" {
			return fmt.Errorf("%w: exercise name is required", errvalues.ErrInvalidInput)
		}
		for _, set := range ex.Sets {
			if set.Reps < 1 {
				return fmt.Errorf("%w: a set needs at least one rep", errvalues.ErrInvalidInput)
			}
			if set.Weight < 0 {
				return fmt.Errorf("%w: set weight must not be negative", errvalues.ErrInvalidInput)
			}
		}
	}
	return nil
}
