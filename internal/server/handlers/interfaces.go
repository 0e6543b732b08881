package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/service/dashboard"
	"github.com/mbodji/macrolog/internal/service/diary"
	"github.com/mbodji/macrolog/internal/service/products"
	"github.com/mbodji/macrolog/internal/service/users"
	"github.com/mbodji/macrolog/internal/service/workouts"
)

// DiaryService is the food-log contract consumed by the diary handler.
type DiaryService interface {
	GetLog(ctx context.Context, userID primitive.ObjectID, date time.Time) (*models.DailyLog, error)
	AddFoodItem(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, productID primitive.ObjectID, amount float64) (*models.DailyLog, error)
	AddCompositeFood(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, name string, ingredients []diary.IngredientInput) (*models.DailyLog, error)
	UpdateFoodItem(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, itemID primitive.ObjectID, req diary.UpdateItemRequest) (*models.DailyLog, error)
	RemoveFoodItem(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, itemID primitive.ObjectID) (*models.DailyLog, error)
}

// AuthService is the registration/login contract consumed by the auth handler.
type AuthService interface {
	Signup(ctx context.Context, email, fullName, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// UserService is the profile contract consumed by the user handler.
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update users.ProfileUpdate) (*models.User, error)
}

// ProductService is the catalog contract consumed by the product handler.
type ProductService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error)
	Create(ctx context.Context, input products.CreateInput, userID primitive.ObjectID, isGlobal bool) (*models.Product, error)
	Update(ctx context.Context, productID primitive.ObjectID, input products.UpdateInput, requester *models.User) (*models.Product, error)
	Delete(ctx context.Context, productID primitive.ObjectID, requester *models.User) error
	ImportByBarcode(ctx context.Context, barcode string, userID primitive.ObjectID) (*models.Product, error)
}

// WorkoutService is the sessions contract consumed by the workout handler.
type WorkoutService interface {
	GetByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]models.Workout, error)
	Create(ctx context.Context, userID primitive.ObjectID, input workouts.CreateInput) (*models.Workout, error)
	Update(ctx context.Context, userID, workoutID primitive.ObjectID, input workouts.UpdateInput) (*models.Workout, error)
	Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error
}

// DashboardService is the summary contract consumed by the dashboard handler.
type DashboardService interface {
	Get(ctx context.Context, userID primitive.ObjectID, date time.Time) (*dashboard.Data, error)
}

// UserLookup resolves accounts for the auth middleware.
type UserLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
