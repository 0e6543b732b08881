package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry describing a food and its reference nutritional
// profile. Global products (IsCustom=false) are visible to everyone; custom
// ones belong to the user who created them.
type Product struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name         string              `bson:"name" json:"name"`
	IsCustom     bool                `bson:"isCustom" json:"isCustom"`
	CreatedBy    *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	ValuesPer100 NutritionalValues   `bson:"valuesPer100g" json:"valuesPer100g"`
	Unit         Unit                `bson:"unit" json:"unit"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
