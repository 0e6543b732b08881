// Package nutrition implements the pure calculation rules of the diary: it
// turns a product's per-100 reference profile and a consumed amount into
// macro values, and aggregates multi-ingredient composites.
package nutrition

import (
	"math"

	"github.com/mbodji/macrolog/internal/domain/models"
)

// Calculate converts a per-100 reference profile and a consumed amount into
// the values for that amount. A non-positive amount yields zero values: it
// means "nothing consumed", not an error.
func Calculate(per100 models.NutritionalValues, amount float64, unit models.Unit) models.NutritionalValues {
	return Round(calculateRaw(per100, amount, unit))
}

// calculateRaw scales the profile without rounding. Composite aggregation
// sums these raw values and rounds once after the sum.
func calculateRaw(per100 models.NutritionalValues, amount float64, unit models.Unit) models.NutritionalValues {
	if amount <= 0 {
		return models.NutritionalValues{}
	}

	// Piece-based products define values per single piece, so the amount is
	// the ratio itself. Gram/ml profiles are defined per 100.
	ratio := amount / 100
	if unit == models.UnitPiece {
		ratio = amount
	}

	return models.NutritionalValues{
		Calories: per100.Calories * ratio,
		Protein:  per100.Protein * ratio,
		Carbs:    per100.Carbs * ratio,
		Fat:      per100.Fat * ratio,
	}
}

// Round applies the rounding rule used everywhere in the diary: calories to
// the nearest integer, protein/carbs/fat to one decimal.
func Round(v models.NutritionalValues) models.NutritionalValues {
	return models.NutritionalValues{
		Calories: math.Round(v.Calories),
		Protein:  math.Round(v.Protein*10) / 10,
		Carbs:    math.Round(v.Carbs*10) / 10,
		Fat:      math.Round(v.Fat*10) / 10,
	}
}
