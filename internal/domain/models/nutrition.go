package models

// Unit identifies the basis a product's nutritional values are defined on.
type Unit string

const (
	// UnitGram means the reference values are defined per 100 g.
	UnitGram Unit = "gram"
	// UnitMl means the reference values are defined per 100 ml.
	UnitMl Unit = "ml"
	// UnitPiece means the reference values are defined per single piece.
	UnitPiece Unit = "unit"
)

// Valid reports whether the unit is one of the supported bases.
func (u Unit) Valid() bool {
	switch u {
	case UnitGram, UnitMl, UnitPiece:
		return true
	}
	return false
}

// NutritionalValues groups the four tracked macros. Depending on context it
// holds either a product's per-100 reference profile or the values calculated
// for an actual consumed amount.
type NutritionalValues struct {
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fat      float64 `bson:"fat" json:"fat"`
}

// Add returns the field-wise sum of v and other.
func (v NutritionalValues) Add(other NutritionalValues) NutritionalValues {
	return NutritionalValues{
		Calories: v.Calories + other.Calories,
		Protein:  v.Protein + other.Protein,
		Carbs:    v.Carbs + other.Carbs,
		Fat:      v.Fat + other.Fat,
	}
}
