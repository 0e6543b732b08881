// Package diary owns the per-user-per-day food log: item mutations across the
// four meal buckets and the deterministic recomputation of day totals.
package diary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/service/nutrition"
)

// ProductLookup resolves catalog products referenced by log entries.
type ProductLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// LogRepository persists daily logs. Save must replace the whole document
// atomically; the service relies on that to keep read-modify-write cycles
// from corrupting a log.
type LogRepository interface {
	FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (*models.DailyLog, error)
	Save(ctx context.Context, log *models.DailyLog) error
}

// IngredientInput is one requested component of a composite item.
type IngredientInput struct {
	ProductID primitive.ObjectID `json:"productId"`
	Amount    float64            `json:"amount"`
}

// UpdateItemRequest is the tagged update payload resolved at the transport
// boundary: Ingredients replaces a composite's component list, Amount changes
// a simple item's consumed quantity. Exactly one of the two is expected.
type UpdateItemRequest struct {
	Amount      *float64          `json:"amount,omitempty"`
	Ingredients []IngredientInput `json:"ingredients,omitempty"`
}

// Service applies mutations to daily logs. It keeps no state of its own:
// every operation loads the aggregate, transforms it and persists the result.
type Service struct {
	products ProductLookup
	logs     LogRepository
	logger   *zap.Logger
}

// NewService wires a diary service instance.
func NewService(products ProductLookup, logs LogRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{products: products, logs: logs, logger: logger}
}

// StartOfDay truncates t to 00:00:00 of its calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetLog returns the user's log for the calendar day containing date,
// creating and persisting an empty one when none exists yet.
func (s *Service) GetLog(ctx context.Context, userID primitive.ObjectID, date time.Time) (*models.DailyLog, error) {
	return s.getOrCreate(ctx, userID, date)
}

func (s *Service) getOrCreate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*models.DailyLog, error) {
	day := StartOfDay(date)

	log, err := s.logs.FindByUserAndDay(ctx, userID, day)
	if err == nil {
		return log, nil
	}
	if !errors.Is(err, errvalues.ErrLogNotFound) {
		return nil, fmt.Errorf("load daily log: %w", err)
	}

	log = models.NewDailyLog(userID, day)
	if err := s.logs.Save(ctx, log); err != nil {
		return nil, fmt.Errorf("create daily log: %w", err)
	}
	return log, nil
}

// AddFoodItem appends a single product to the given meal. An unresolvable
// product fails the whole request, unlike composite ingredients which are
// skipped; the asymmetry is intentional and mirrors the historical behavior.
func (s *Service) AddFoodItem(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, productID primitive.ObjectID, amount float64) (*models.DailyLog, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", errvalues.ErrInvalidInput, mealType)
	}

	log, err := s.getOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := models.FoodLogItem{
		ID:               primitive.NewObjectID(),
		FoodID:           &product.ID,
		Name:             product.Name,
		AmountConsumed:   amount,
		Unit:             product.Unit,
		CalculatedValues: nutrition.Calculate(product.ValuesPer100, amount, product.Unit),
	}

	bucket := log.Meals.Bucket(mealType)
	bucket.Items = append(bucket.Items, item)

	return s.persist(ctx, log)
}

// AddCompositeFood appends one multi-ingredient item to the given meal.
// Ingredients whose product no longer exists are skipped silently; a partial
// composite is preferred over failing the whole entry.
func (s *Service) AddCompositeFood(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, name string, ingredients []IngredientInput) (*models.DailyLog, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", errvalues.ErrInvalidInput, mealType)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: composite name is required", errvalues.ErrInvalidInput)
	}

	log, err := s.getOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	resolved, portions, err := s.resolveIngredients(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	values, totalAmount := nutrition.Aggregate(portions)

	item := models.FoodLogItem{
		ID:               primitive.NewObjectID(),
		Name:             name,
		AmountConsumed:   totalAmount,
		Unit:             models.UnitGram,
		Ingredients:      resolved,
		CalculatedValues: values,
	}

	bucket := log.Meals.Bucket(mealType)
	bucket.Items = append(bucket.Items, item)

	return s.persist(ctx, log)
}

// UpdateFoodItem edits an existing item in place. Composite items take a new
// ingredient list and are re-aggregated; simple items take a new amount and
// are recalculated from the product's canonical profile, so repeated edits
// do not compound rounding error. Items without a product reference fall
// back to linear scaling of the cached values.
func (s *Service) UpdateFoodItem(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, itemID primitive.ObjectID, req UpdateItemRequest) (*models.DailyLog, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", errvalues.ErrInvalidInput, mealType)
	}

	log, err := s.getOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	bucket := log.Meals.Bucket(mealType)
	idx := -1
	for i := range bucket.Items {
		if bucket.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errvalues.ErrItemNotFound
	}
	item := &bucket.Items[idx]

	switch {
	case len(req.Ingredients) > 0 && item.IsComposite():
		resolved, portions, err := s.resolveIngredients(ctx, req.Ingredients)
		if err != nil {
			return nil, err
		}
		values, totalAmount := nutrition.Aggregate(portions)
		item.Ingredients = resolved
		item.AmountConsumed = totalAmount
		item.CalculatedValues = values

	case req.Amount != nil:
		if err := s.applyAmountUpdate(ctx, item, *req.Amount); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: update requires an amount or an ingredient list", errvalues.ErrInvalidInput)
	}

	return s.persist(ctx, log)
}

// RemoveFoodItem deletes an item from the given meal. Removing an id that is
// not present leaves the log unchanged; it is a no-op, not an error.
func (s *Service) RemoveFoodItem(ctx context.Context, userID primitive.ObjectID, date time.Time, mealType models.MealType, itemID primitive.ObjectID) (*models.DailyLog, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", errvalues.ErrInvalidInput, mealType)
	}

	log, err := s.getOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	bucket := log.Meals.Bucket(mealType)
	kept := bucket.Items[:0]
	for _, item := range bucket.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	bucket.Items = kept

	return s.persist(ctx, log)
}

// applyAmountUpdate changes a simple item's consumed amount. With a live
// product reference the values are recomputed from the canonical profile;
// without one the cached values are scaled linearly, a lower-fidelity legacy
// path whose rounding compounds across edits.
func (s *Service) applyAmountUpdate(ctx context.Context, item *models.FoodLogItem, newAmount float64) error {
	if item.FoodID != nil {
		product, err := s.products.FindByID(ctx, *item.FoodID)
		if err != nil {
			return err
		}
		item.AmountConsumed = newAmount
		item.CalculatedValues = nutrition.Calculate(product.ValuesPer100, newAmount, product.Unit)
		return nil
	}

	if item.AmountConsumed <= 0 {
		return fmt.Errorf("%w: cannot rescale item with zero amount", errvalues.ErrInvalidInput)
	}

	ratio := newAmount / item.AmountConsumed
	s.logger.Warn("item has no product reference, applying linear scaling fallback",
		zap.String("item_id", item.ID.Hex()),
		zap.Float64("ratio", ratio))

	v := item.CalculatedValues
	item.AmountConsumed = newAmount
	item.CalculatedValues = nutrition.Round(models.NutritionalValues{
		Calories: v.Calories * ratio,
		Protein:  v.Protein * ratio,
		Carbs:    v.Carbs * ratio,
		Fat:      v.Fat * ratio,
	})
	return nil
}

// resolveIngredients looks up every requested ingredient and returns the
// retained ingredient records plus the portions fed to the aggregator.
// Missing products are skipped; any other lookup failure aborts.
func (s *Service) resolveIngredients(ctx context.Context, ingredients []IngredientInput) ([]models.Ingredient, []nutrition.Portion, error) {
	resolved := make([]models.Ingredient, 0, len(ingredients))
	portions := make([]nutrition.Portion, 0, len(ingredients))

	for _, ing := range ingredients {
		product, err := s.products.FindByID(ctx, ing.ProductID)
		if errors.Is(err, errvalues.ErrProductNotFound) {
			s.logger.Debug("skipping unresolvable ingredient", zap.String("product_id", ing.ProductID.Hex()))
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("resolve ingredient: %w", err)
		}

		resolved = append(resolved, models.Ingredient{
			ProductID: product.ID,
			Name:      product.Name,
			Amount:    ing.Amount,
			Unit:      product.Unit,
		})
		portions = append(portions, nutrition.Portion{
			Per100: product.ValuesPer100,
			Amount: ing.Amount,
			Unit:   product.Unit,
		})
	}

	return resolved, portions, nil
}

func (s *Service) persist(ctx context.Context, log *models.DailyLog) (*models.DailyLog, error) {
	log.Totals = ComputeTotals(&log.Meals)
	log.UpdatedAt = time.Now()
	if err := s.logs.Save(ctx, log); err != nil {
		return nil, fmt.Errorf("save daily log: %w", err)
	}
	return log, nil
}
