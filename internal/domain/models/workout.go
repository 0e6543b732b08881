package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSet is a single performed set. Weight 0 implies bodyweight.
type WorkoutSet struct {
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"`
}

// Exercise is one exercise of a session with its performed sets.
type Exercise struct {
	Name string       `bson:"name" json:"name"`
	Sets []WorkoutSet `bson:"sets" json:"sets"`
}

// Workout is a full training session linked to a user and a date.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`
	Name      string             `bson:"name" json:"name"`
	Duration  int                `bson:"duration" json:"duration"` // minutes
	Exercises []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
