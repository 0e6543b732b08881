package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType is one of the four fixed meal buckets of a daily log.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealOrder is the canonical bucket iteration order used whenever the four
// meals are traversed. Deterministic order keeps totals reproducible.
var MealOrder = [4]MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether t names one of the four meal buckets.
func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Ingredient is one component of a composite food item. The original amount
// and unit are kept verbatim so the composite stays editable later.
type Ingredient struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Amount    float64            `bson:"amount" json:"amount"`
	Unit      Unit               `bson:"unit" json:"unit"`
}

// FoodLogItem is one logged entry inside a meal bucket. Simple items carry a
// product reference; composite items carry an ingredient list instead.
// CalculatedValues is a cache derived from the item's own fields, never an
// independent source of truth.
type FoodLogItem struct {
	ID               primitive.ObjectID  `bson:"_id" json:"_id"`
	FoodID           *primitive.ObjectID `bson:"foodId,omitempty" json:"foodId,omitempty"`
	Name             string              `bson:"name" json:"name"`
	AmountConsumed   float64             `bson:"amountConsumed" json:"amountConsumed"`
	Unit             Unit                `bson:"unit" json:"unit"`
	Ingredients      []Ingredient        `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	CalculatedValues NutritionalValues   `bson:"calculatedValues" json:"calculatedValues"`
}

// IsComposite reports whether the item was logged from multiple ingredients.
func (i FoodLogItem) IsComposite() bool {
	return len(i.Ingredients) > 0
}

// Meal is an ordered list of logged items. Order is insertion order and only
// matters for display.
type Meal struct {
	Items []FoodLogItem `bson:"items" json:"items"`
}

// Meals holds the four fixed buckets of a daily log.
type Meals struct {
	Breakfast Meal `bson:"breakfast" json:"breakfast"`
	Lunch     Meal `bson:"lunch" json:"lunch"`
	Dinner    Meal `bson:"dinner" json:"dinner"`
	Snack     Meal `bson:"snack" json:"snack"`
}

// Bucket returns a pointer to the bucket for t, or nil for an unknown meal.
func (m *Meals) Bucket(t MealType) *Meal {
	switch t {
	case MealBreakfast:
		return &m.Breakfast
	case MealLunch:
		return &m.Lunch
	case MealDinner:
		return &m.Dinner
	case MealSnack:
		return &m.Snack
	}
	return nil
}

// DailyLog is the per-user-per-day aggregate: four meal buckets plus their
// summed totals. Date is always truncated to the start of the day; at most
// one log exists per (user, day) pair.
type DailyLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`
	Meals     Meals              `bson:"meals" json:"meals"`
	Totals    NutritionalValues  `bson:"totals" json:"totals"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewDailyLog builds an empty log for the given user and day with four empty
// buckets and zero totals.
func NewDailyLog(userID primitive.ObjectID, day time.Time) *DailyLog {
	now := time.Now()
	return &DailyLog{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Date:      day,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
