// Package auth handles registration and credential verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
)

const bcryptCost = 10

// UserRepository is the account persistence contract needed by auth.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// Service implements signup and login.
type Service struct {
	users  UserRepository
	logger *zap.Logger
}

// NewService wires an auth service instance.
func NewService(users UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, logger: logger}
}

// Signup registers a new account with a bcrypt-hashed password and default
// profile targets.
func (s *Service) Signup(ctx context.Context, email, fullName, password string) (*models.User, error) {
	switch {
	case email == "":
		return nil, fmt.Errorf("%w: email is required", errvalues.ErrInvalidInput)
	case fullName == "":
		return nil, fmt.Errorf("%w: full name is required", errvalues.ErrInvalidInput)
	case len(password) < 6:
		return nil, fmt.Errorf("%w: password must be at least 6 characters", errvalues.ErrInvalidInput)
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, errvalues.ErrUserExists
	}
	if !errors.Is(err, errvalues.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		Email:     email,
		FullName:  fullName,
		Password:  string(hash),
		Role:      "user",
		Profile:   models.DefaultProfile(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return user, nil
}

// Login verifies credentials. A missing account and a wrong password produce
// the same error so the response does not leak which emails are registered.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, errvalues.ErrUserNotFound) {
		return nil, errvalues.ErrWrongCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errvalues.ErrWrongCredentials
	}
	return user, nil
}
