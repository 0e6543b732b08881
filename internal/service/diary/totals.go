package diary

import (
	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/service/nutrition"
)

// ComputeTotals derives day totals from every item in every meal bucket.
// It is a pure function of the buckets: after each mutation the previous
// totals are fully replaced with its result, never adjusted incrementally,
// so totals cannot drift from item-level truth. Buckets are walked in the
// canonical meal order; items are summed raw and rounded once at the end.
func ComputeTotals(meals *models.Meals) models.NutritionalValues {
	var raw models.NutritionalValues
	for _, mealType := range models.MealOrder {
		for _, item := range meals.Bucket(mealType).Items {
			raw = raw.Add(item.CalculatedValues)
		}
	}
	return nutrition.Round(raw)
}
