package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/service/diary"
)

// DiaryHandler handles the food-log endpoints. Every mutation responds with
// the full updated log so the client can render buckets and totals without a
// second request.
type DiaryHandler struct {
	svc    DiaryService
	logger *zap.Logger
}

// NewDiaryHandler constructs the diary HTTP adapter.
func NewDiaryHandler(svc DiaryService, logger *zap.Logger) *DiaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiaryHandler{svc: svc, logger: logger}
}

type addItemRequest struct {
	Date      string          `json:"date" binding:"required"`
	MealType  models.MealType `json:"mealType" binding:"required"`
	ProductID string          `json:"productId" binding:"required"`
	Amount    float64         `json:"amount"`
}

type ingredientRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Amount    float64 `json:"amount"`
}

type addCompositeRequest struct {
	Date        string              `json:"date" binding:"required"`
	MealType    models.MealType     `json:"mealType" binding:"required"`
	Name        string              `json:"name" binding:"required"`
	Ingredients []ingredientRequest `json:"ingredients" binding:"required"`
}

type updateItemRequest struct {
	Date        string              `json:"date" binding:"required"`
	MealType    models.MealType     `json:"mealType" binding:"required"`
	Amount      *float64            `json:"amount,omitempty"`
	Ingredients []ingredientRequest `json:"ingredients,omitempty"`
}

type locateItemRequest struct {
	Date     string          `json:"date" binding:"required"`
	MealType models.MealType `json:"mealType" binding:"required"`
}

// GetLog returns the log for the requested date (today when omitted),
// creating an empty one on first access.
func (h *DiaryHandler) GetLog(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	log, err := h.svc.GetLog(c.Request.Context(), CurrentUser(c).ID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": log})
}

// AddItem appends a single product to a meal.
func (h *DiaryHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date, mealType and productId are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}
	productID, err := parseObjectID(req.ProductID)
	if err != nil {
		badRequest(c, "invalid productId")
		return
	}

	log, err := h.svc.AddFoodItem(c.Request.Context(), CurrentUser(c).ID, date, req.MealType, productID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": log})
}

// AddComposite appends a multi-ingredient item to a meal.
func (h *DiaryHandler) AddComposite(c *gin.Context) {
	var req addCompositeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date, mealType, name and ingredients are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}
	ingredients, err := toIngredientInputs(req.Ingredients)
	if err != nil {
		badRequest(c, "invalid ingredient productId")
		return
	}

	log, err := h.svc.AddCompositeFood(c.Request.Context(), CurrentUser(c).ID, date, req.MealType, req.Name, ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": log})
}

// UpdateItem edits an existing item, either by amount or by ingredient list.
func (h *DiaryHandler) UpdateItem(c *gin.Context) {
	itemID, err := parseObjectID(c.Param("itemId"))
	if err != nil {
		badRequest(c, "invalid itemId")
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date and mealType are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}
	ingredients, err := toIngredientInputs(req.Ingredients)
	if err != nil {
		badRequest(c, "invalid ingredient productId")
		return
	}

	update := diary.UpdateItemRequest{Amount: req.Amount, Ingredients: ingredients}

	log, err := h.svc.UpdateFoodItem(c.Request.Context(), CurrentUser(c).ID, date, req.MealType, itemID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": log})
}

// RemoveItem deletes an item from a meal.
func (h *DiaryHandler) RemoveItem(c *gin.Context) {
	itemID, err := parseObjectID(c.Param("itemId"))
	if err != nil {
		badRequest(c, "invalid itemId")
		return
	}

	var req locateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date and mealType are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	log, err := h.svc.RemoveFoodItem(c.Request.Context(), CurrentUser(c).ID, date, req.MealType, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": log})
}

func toIngredientInputs(requests []ingredientRequest) ([]diary.IngredientInput, error) {
	if len(requests) == 0 {
		return nil, nil
	}
	inputs := make([]diary.IngredientInput, 0, len(requests))
	for _, r := range requests {
		productID, err := parseObjectID(r.ProductID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, diary.IngredientInput{ProductID: productID, Amount: r.Amount})
	}
	return inputs, nil
}
