package diary_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/service/diary"
)

type productStore struct {
	products map[primitive.ObjectID]*models.Product
	failWith error
}

func (s *productStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	product, ok := s.products[id]
	if !ok {
		return nil, errvalues.ErrProductNotFound
	}
	return product, nil
}

type logStore struct {
	logs  map[string]*models.DailyLog
	saves int
}

func newLogStore() *logStore {
	return &logStore{logs: make(map[string]*models.DailyLog)}
}

func dayKey(userID primitive.ObjectID, day time.Time) string {
	return fmt.Sprintf("%s/%s", userID.Hex(), day.Format("2006-01-02"))
}

func (s *logStore) FindByUserAndDay(_ context.Context, userID primitive.ObjectID, day time.Time) (*models.DailyLog, error) {
	log, ok := s.logs[dayKey(userID, day)]
	if !ok {
		return nil, errvalues.ErrLogNotFound
	}
	return log, nil
}

func (s *logStore) Save(_ context.Context, log *models.DailyLog) error {
	s.logs[dayKey(log.UserID, log.Date)] = log
	s.saves++
	return nil
}

var (
	bananaID = primitive.NewObjectID()
	wheyID   = primitive.NewObjectID()

	bananaProduct = &models.Product{
		ID:           bananaID,
		Name:         "Banana",
		Unit:         models.UnitGram,
		ValuesPer100: models.NutritionalValues{Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2},
	}
	wheyProduct = &models.Product{
		ID:           wheyID,
		Name:         "Whey Scoop",
		Unit:         models.UnitPiece,
		ValuesPer100: models.NutritionalValues{Calories: 120, Protein: 24, Carbs: 3, Fat: 1},
	}
)

func newFixture() (*diary.Service, *productStore, *logStore) {
	products := &productStore{products: map[primitive.ObjectID]*models.Product{
		bananaID: bananaProduct,
		wheyID:   wheyProduct,
	}}
	logs := newLogStore()
	return diary.NewService(products, logs, nil), products, logs
}

func TestGetLog(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc, _, logs := newFixture()

	morning := time.Date(2025, 3, 10, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 22, 40, 0, 0, time.UTC)

	first, err := svc.GetLog(ctx, userID, morning)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, models.NutritionalValues{}, first.Totals)
	assert.Empty(t, first.Meals.Breakfast.Items)

	second, err := svc.GetLog(ctx, userID, evening)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same calendar day resolves to the same log")
	assert.Equal(t, 1, logs.saves, "the empty log is persisted once")
}

func TestAddFoodItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("calculates values from the product profile", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddFoodItem(ctx, userID, date, models.MealBreakfast, bananaID, 150)
		require.NoError(t, err)

		require.Len(t, log.Meals.Breakfast.Items, 1)
		item := log.Meals.Breakfast.Items[0]
		assert.Equal(t, "Banana", item.Name)
		assert.Equal(t, 150.0, item.AmountConsumed)
		assert.Equal(t, models.UnitGram, item.Unit)
		require.NotNil(t, item.FoodID)
		assert.Equal(t, bananaID, *item.FoodID)
		assert.False(t, item.IsComposite())
		assert.Equal(t, models.NutritionalValues{Calories: 78, Protein: 0.5, Carbs: 21, Fat: 0.3}, item.CalculatedValues)
		assert.Equal(t, item.CalculatedValues, log.Totals)
	})

	t.Run("unknown product fails the request", func(t *testing.T) {
		svc, _, logs := newFixture()

		_, err := svc.AddFoodItem(ctx, userID, date, models.MealLunch, primitive.NewObjectID(), 100)
		assert.ErrorIs(t, err, errvalues.ErrProductNotFound)

		log := logs.logs[dayKey(userID, diary.StartOfDay(date))]
		require.NotNil(t, log, "the empty log is still created before the lookup")
		assert.Empty(t, log.Meals.Lunch.Items)
	})

	t.Run("rejects unknown meal type", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.AddFoodItem(ctx, userID, date, models.MealType("brunch"), bananaID, 100)
		assert.ErrorIs(t, err, errvalues.ErrInvalidInput)
	})
}

func TestAddCompositeFood(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("aggregates ingredients before rounding", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddCompositeFood(ctx, userID, date, models.MealSnack, "Shake", []diary.IngredientInput{
			{ProductID: bananaID, Amount: 150},
			{ProductID: wheyID, Amount: 1},
		})
		require.NoError(t, err)

		require.Len(t, log.Meals.Snack.Items, 1)
		item := log.Meals.Snack.Items[0]
		assert.Equal(t, "Shake", item.Name)
		assert.True(t, item.IsComposite())
		assert.Nil(t, item.FoodID)
		assert.Equal(t, 151.0, item.AmountConsumed)
		assert.Equal(t, models.NutritionalValues{Calories: 198, Protein: 24.5, Carbs: 24, Fat: 1.3}, item.CalculatedValues)
		require.Len(t, item.Ingredients, 2)
		assert.Equal(t, models.UnitPiece, item.Ingredients[1].Unit)
	})

	t.Run("skips ingredients whose product is gone", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddCompositeFood(ctx, userID, date, models.MealDinner, "Salad", []diary.IngredientInput{
			{ProductID: bananaID, Amount: 100},
			{ProductID: primitive.NewObjectID(), Amount: 50},
		})
		require.NoError(t, err)

		item := log.Meals.Dinner.Items[0]
		require.Len(t, item.Ingredients, 1)
		assert.Equal(t, 100.0, item.AmountConsumed)
		assert.Equal(t, models.NutritionalValues{Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2}, item.CalculatedValues)
	})

	t.Run("requires a name", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.AddCompositeFood(ctx, userID, date, models.MealDinner, "", []diary.IngredientInput{
			{ProductID: bananaID, Amount: 100},
		})
		assert.ErrorIs(t, err, errvalues.ErrInvalidInput)
	})
}

func TestUpdateFoodItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	amount := func(v float64) diary.UpdateItemRequest {
		return diary.UpdateItemRequest{Amount: &v}
	}

	t.Run("amount change recomputes from the canonical profile", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddFoodItem(ctx, userID, date, models.MealBreakfast, bananaID, 150)
		require.NoError(t, err)
		itemID := log.Meals.Breakfast.Items[0].ID

		log, err = svc.UpdateFoodItem(ctx, userID, date, models.MealBreakfast, itemID, amount(100))
		require.NoError(t, err)

		item := log.Meals.Breakfast.Items[0]
		assert.Equal(t, 100.0, item.AmountConsumed)
		assert.Equal(t, models.NutritionalValues{Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2}, item.CalculatedValues)
		assert.Equal(t, item.CalculatedValues, log.Totals)
	})

	t.Run("item without product reference scales linearly", func(t *testing.T) {
		svc, _, logs := newFixture()
		day := diary.StartOfDay(date)

		log := models.NewDailyLog(userID, day)
		legacyID := primitive.NewObjectID()
		log.Meals.Lunch.Items = append(log.Meals.Lunch.Items, models.FoodLogItem{
			ID:               legacyID,
			Name:             "Imported Meal",
			AmountConsumed:   50,
			Unit:             models.UnitGram,
			CalculatedValues: models.NutritionalValues{Calories: 100, Protein: 5, Carbs: 10, Fat: 2},
		})
		require.NoError(t, logs.Save(ctx, log))

		updated, err := svc.UpdateFoodItem(ctx, userID, date, models.MealLunch, legacyID, amount(100))
		require.NoError(t, err)

		item := updated.Meals.Lunch.Items[0]
		assert.Equal(t, 100.0, item.AmountConsumed)
		assert.Equal(t, models.NutritionalValues{Calories: 200, Protein: 10, Carbs: 20, Fat: 4}, item.CalculatedValues)
	})

	t.Run("dangling product reference fails the update", func(t *testing.T) {
		svc, products, _ := newFixture()

		log, err := svc.AddFoodItem(ctx, userID, date, models.MealBreakfast, bananaID, 150)
		require.NoError(t, err)
		itemID := log.Meals.Breakfast.Items[0].ID

		delete(products.products, bananaID)

		_, err = svc.UpdateFoodItem(ctx, userID, date, models.MealBreakfast, itemID, amount(100))
		assert.ErrorIs(t, err, errvalues.ErrProductNotFound)
	})

	t.Run("composite takes a replacement ingredient list", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddCompositeFood(ctx, userID, date, models.MealSnack, "Shake", []diary.IngredientInput{
			{ProductID: bananaID, Amount: 150},
			{ProductID: wheyID, Amount: 1},
		})
		require.NoError(t, err)
		itemID := log.Meals.Snack.Items[0].ID

		log, err = svc.UpdateFoodItem(ctx, userID, date, models.MealSnack, itemID, diary.UpdateItemRequest{
			Ingredients: []diary.IngredientInput{{ProductID: wheyID, Amount: 2}},
		})
		require.NoError(t, err)

		item := log.Meals.Snack.Items[0]
		require.Len(t, item.Ingredients, 1)
		assert.Equal(t, 2.0, item.AmountConsumed)
		assert.Equal(t, models.NutritionalValues{Calories: 240, Protein: 48, Carbs: 6, Fat: 2}, item.CalculatedValues)
	})

	t.Run("unknown item id", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.UpdateFoodItem(ctx, userID, date, models.MealBreakfast, primitive.NewObjectID(), amount(100))
		assert.ErrorIs(t, err, errvalues.ErrItemNotFound)
	})

	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddFoodItem(ctx, userID, date, models.MealBreakfast, bananaID, 150)
		require.NoError(t, err)
		itemID := log.Meals.Breakfast.Items[0].ID

		_, err = svc.UpdateFoodItem(ctx, userID, date, models.MealBreakfast, itemID, diary.UpdateItemRequest{})
		assert.ErrorIs(t, err, errvalues.ErrInvalidInput)
	})
}

func TestRemoveFoodItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("removes the item and recomputes totals", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddFoodItem(ctx, userID, date, models.MealBreakfast, bananaID, 150)
		require.NoError(t, err)
		_, err = svc.AddFoodItem(ctx, userID, date, models.MealDinner, wheyID, 1)
		require.NoError(t, err)
		itemID := log.Meals.Breakfast.Items[0].ID

		log, err = svc.RemoveFoodItem(ctx, userID, date, models.MealBreakfast, itemID)
		require.NoError(t, err)

		assert.Empty(t, log.Meals.Breakfast.Items)
		assert.Equal(t, models.NutritionalValues{Calories: 120, Protein: 24, Carbs: 3, Fat: 1}, log.Totals)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		svc, _, _ := newFixture()

		log, err := svc.AddFoodItem(ctx, userID, date, models.MealBreakfast, bananaID, 150)
		require.NoError(t, err)
		before := log.Totals

		log, err = svc.RemoveFoodItem(ctx, userID, date, models.MealBreakfast, primitive.NewObjectID())
		require.NoError(t, err)

		assert.Len(t, log.Meals.Breakfast.Items, 1)
		assert.Equal(t, before, log.Totals)
	})
}

func TestTotalsInvariant(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newFixture()

	check := func(log *models.DailyLog) {
		t.Helper()
		assert.Equal(t, diary.ComputeTotals(&log.Meals), log.Totals)
	}

	log, err := svc.AddFoodItem(ctx, userID, date, models.MealBreakfast, bananaID, 150)
	require.NoError(t, err)
	check(log)
	breakfastItem := log.Meals.Breakfast.Items[0].ID

	log, err = svc.AddCompositeFood(ctx, userID, date, models.MealSnack, "Shake", []diary.IngredientInput{
		{ProductID: bananaID, Amount: 150},
		{ProductID: wheyID, Amount: 1},
	})
	require.NoError(t, err)
	check(log)

	newAmount := 80.0
	log, err = svc.UpdateFoodItem(ctx, userID, date, models.MealBreakfast, breakfastItem, diary.UpdateItemRequest{Amount: &newAmount})
	require.NoError(t, err)
	check(log)

	log, err = svc.RemoveFoodItem(ctx, userID, date, models.MealBreakfast, breakfastItem)
	require.NoError(t, err)
	check(log)
	assert.Empty(t, log.Meals.Breakfast.Items)
}

func TestComputeTotals(t *testing.T) {
	meals := models.Meals{
		Breakfast: models.Meal{Items: []models.FoodLogItem{
			{CalculatedValues: models.NutritionalValues{Calories: 78, Protein: 0.5, Carbs: 21, Fat: 0.3}},
		}},
		Dinner: models.Meal{Items: []models.FoodLogItem{
			{CalculatedValues: models.NutritionalValues{Calories: 120, Protein: 24, Carbs: 3, Fat: 1}},
		}},
	}

	first := diary.ComputeTotals(&meals)
	assert.Equal(t, models.NutritionalValues{Calories: 198, Protein: 24.5, Carbs: 24, Fat: 1.3}, first)
	assert.Equal(t, first, diary.ComputeTotals(&meals), "recomputation is stable")
}
