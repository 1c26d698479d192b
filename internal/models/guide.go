package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingGuide is a content page with care/training steps for a pet type.
type TrainingGuide struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PetType   string             `bson:"pet_type" json:"pet_type"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Steps     []string           `bson:"steps,omitempty" json:"steps,omitempty"`
	Author    string             `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
