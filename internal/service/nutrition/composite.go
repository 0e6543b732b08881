package nutrition

import "github.com/mbodji/macrolog/internal/domain/models"

// Portion is one resolved ingredient of a composite item: the product's
// per-100 profile plus the amount actually used.
type Portion struct {
	Per100 models.NutritionalValues
	Amount float64
	Unit   models.Unit
}

// Aggregate sums the portions of a composite into one set of calculated
// values and a total amount. Values are summed raw and rounded once after
// the sum, so sub-rounding contributions still add up instead of vanishing
// into independently rounded zeros.
//
// The total amount is the plain sum of portion amounts; gram, ml and piece
// portions are summed as-is without unit conversion.
func Aggregate(portions []Portion) (models.NutritionalValues, float64) {
	var raw models.NutritionalValues
	var totalAmount float64

	for _, p := range portions {
		raw = raw.Add(calculateRaw(p.Per100, p.Amount, p.Unit))
		totalAmount += p.Amount
	}

	return Round(raw), totalAmount
}
