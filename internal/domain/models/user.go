package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds a user's body metrics, daily macro targets and UI preference.
type Profile struct {
	Weight             float64 `bson:"weight" json:"weight"`
	Height             float64 `bson:"height" json:"height"`
	Age                int     `bson:"age" json:"age"`
	Gender             string  `bson:"gender,omitempty" json:"gender,omitempty"`
	DailyCalorieTarget float64 `bson:"dailyCalorieTarget" json:"dailyCalorieTarget"`
	DailyProteinTarget float64 `bson:"dailyProteinTarget" json:"dailyProteinTarget"`
	DailyCarbTarget    float64 `bson:"dailyCarbTarget" json:"dailyCarbTarget"`
	DailyFatTarget     float64 `bson:"dailyFatTarget" json:"dailyFatTarget"`
	Theme              string  `bson:"theme" json:"theme"`
}

// DefaultProfile returns the targets applied to a freshly registered user.
func DefaultProfile() Profile {
	return Profile{
		DailyCalorieTarget: 2000,
		DailyProteinTarget: 150,
		DailyCarbTarget:    300,
		DailyFatTarget:     70,
		Theme:              "business",
	}
}

// WeightEntry is one point of a user's weight history.
type WeightEntry struct {
	Weight float64   `bson:"weight" json:"weight"`
	Date   time.Time `bson:"date" json:"date"`
}

// User is a registered account. Password holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	FullName      string             `bson:"fullName" json:"fullName"`
	Password      string             `bson:"password" json:"-"`
	Role          string             `bson:"role" json:"role"`
	Profile       Profile            `bson:"profile" json:"profile"`
	WeightHistory []WeightEntry      `bson:"weightHistory" json:"weightHistory"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
