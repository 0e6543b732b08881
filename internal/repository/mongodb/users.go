package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
)

// UserRepository stores registered accounts.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository builds the repository and ensures the unique email index.
func NewUserRepository(ctx context.Context, c *Client) (*UserRepository, error) {
	coll := c.db.Collection("users")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create users index: %w", err)
	}

	return &UserRepository{coll: coll}, nil
}

// FindByEmail loads a user by email. Returns errvalues.ErrUserNotFound when
// no account exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errvalues.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errvalues.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Insert stores a new user and backfills the generated id. An email collision
// surfaces as errvalues.ErrUserExists.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return errvalues.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// Update replaces the stored user document.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return errvalues.ErrUserNotFound
	}
	return nil
}
