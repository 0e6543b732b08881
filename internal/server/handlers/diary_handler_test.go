package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/service/diary"
)

type diaryServiceStub struct {
	log *models.DailyLog
	err error

	mealType  models.MealType
	productID primitive.ObjectID
	amount    float64
	itemID    primitive.ObjectID
	update    diary.UpdateItemRequest
	name      string
}

func (s *diaryServiceStub) GetLog(_ context.Context, _ primitive.ObjectID, _ time.Time) (*models.DailyLog, error) {
	return s.log, s.err
}

func (s *diaryServiceStub) AddFoodItem(_ context.Context, _ primitive.ObjectID, _ time.Time, mealType models.MealType, productID primitive.ObjectID, amount float64) (*models.DailyLog, error) {
	s.mealType, s.productID, s.amount = mealType, productID, amount
	return s.log, s.err
}

func (s *diaryServiceStub) AddCompositeFood(_ context.Context, _ primitive.ObjectID, _ time.Time, mealType models.MealType, name string, ingredients []diary.IngredientInput) (*models.DailyLog, error) {
	s.mealType, s.name = mealType, name
	s.update.Ingredients = ingredients
	return s.log, s.err
}

func (s *diaryServiceStub) UpdateFoodItem(_ context.Context, _ primitive.ObjectID, _ time.Time, mealType models.MealType, itemID primitive.ObjectID, req diary.UpdateItemRequest) (*models.DailyLog, error) {
	s.mealType, s.itemID, s.update = mealType, itemID, req
	return s.log, s.err
}

func (s *diaryServiceStub) RemoveFoodItem(_ context.Context, _ primitive.ObjectID, _ time.Time, mealType models.MealType, itemID primitive.ObjectID) (*models.DailyLog, error) {
	s.mealType, s.itemID = mealType, itemID
	return s.log, s.err
}

func diaryRouter(svc *diaryServiceStub, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDiaryHandler(svc, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(userContextKey, user)
	})
	r.GET("/api/diary", h.GetLog)
	r.POST("/api/diary/add-item", h.AddItem)
	r.POST("/api/diary/add-composite", h.AddComposite)
	r.PATCH("/api/diary/item/:itemId", h.UpdateItem)
	r.DELETE("/api/diary/item/:itemId", h.RemoveItem)
	return r
}

func perform(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestDiaryGetLog(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	log := models.NewDailyLog(user.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	t.Run("ok", func(t *testing.T) {
		r := diaryRouter(&diaryServiceStub{log: log}, user)

		w := perform(t, r, http.MethodGet, "/api/diary?date=2025-03-10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		payload := decode(t, w)
		assert.Equal(t, true, payload["success"])
		assert.Contains(t, payload, "log")
	})

	t.Run("bad date", func(t *testing.T) {
		r := diaryRouter(&diaryServiceStub{log: log}, user)

		w := perform(t, r, http.MethodGet, "/api/diary?date=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDiaryAddItem(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	log := models.NewDailyLog(user.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	productID := primitive.NewObjectID()

	body := gin.H{
		"date":      "2025-03-10",
		"mealType":  "breakfast",
		"productId": productID.Hex(),
		"amount":    150,
	}

	t.Run("ok", func(t *testing.T) {
		svc := &diaryServiceStub{log: log}
		r := diaryRouter(svc, user)

		w := perform(t, r, http.MethodPost, "/api/diary/add-item", body)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, models.MealBreakfast, svc.mealType)
		assert.Equal(t, productID, svc.productID)
		assert.Equal(t, 150.0, svc.amount)
	})

	t.Run("missing fields", func(t *testing.T) {
		r := diaryRouter(&diaryServiceStub{log: log}, user)

		w := perform(t, r, http.MethodPost, "/api/diary/add-item", gin.H{"date": "2025-03-10"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		r := diaryRouter(&diaryServiceStub{err: errvalues.ErrProductNotFound}, user)

		w := perform(t, r, http.MethodPost, "/api/diary/add-item", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})
}

func TestDiaryUpdateItem(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	log := models.NewDailyLog(user.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	itemID := primitive.NewObjectID()

	t.Run("amount update", func(t *testing.T) {
		svc := &diaryServiceStub{log: log}
		r := diaryRouter(svc, user)

		w := perform(t, r, http.MethodPatch, "/api/diary/item/"+itemID.Hex(), gin.H{
			"date":     "2025-03-10",
			"mealType": "lunch",
			"amount":   80,
		})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, itemID, svc.itemID)
		require.NotNil(t, svc.update.Amount)
		assert.Equal(t, 80.0, *svc.update.Amount)
		assert.Empty(t, svc.update.Ingredients)
	})

	t.Run("ingredient update", func(t *testing.T) {
		svc := &diaryServiceStub{log: log}
		r := diaryRouter(svc, user)
		productID := primitive.NewObjectID()

		w := perform(t, r, http.MethodPatch, "/api/diary/item/"+itemID.Hex(), gin.H{
			"date":     "2025-03-10",
			"mealType": "snack",
			"ingredients": []gin.H{
				{"productId": productID.Hex(), "amount": 120},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Nil(t, svc.update.Amount)
		require.Len(t, svc.update.Ingredients, 1)
		assert.Equal(t, productID, svc.update.Ingredients[0].ProductID)
	})

	t.Run("malformed item id", func(t *testing.T) {
		r := diaryRouter(&diaryServiceStub{log: log}, user)

		w := perform(t, r, http.MethodPatch, "/api/diary/item/not-an-id", gin.H{
			"date":     "2025-03-10",
			"mealType": "lunch",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown item maps to 404", func(t *testing.T) {
		r := diaryRouter(&diaryServiceStub{err: errvalues.ErrItemNotFound}, user)

		w := perform(t, r, http.MethodPatch, "/api/diary/item/"+itemID.Hex(), gin.H{
			"date":     "2025-03-10",
			"mealType": "lunch",
			"amount":   80,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDiaryRemoveItem(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	log := models.NewDailyLog(user.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	itemID := primitive.NewObjectID()

	svc := &diaryServiceStub{log: log}
	r := diaryRouter(svc, user)

	w := perform(t, r, http.MethodDelete, "/api/diary/item/"+itemID.Hex(), gin.H{
		"date":     "2025-03-10",
		"mealType": "dinner",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, itemID, svc.itemID)
	assert.Equal(t, models.MealDinner, svc.mealType)
}
