package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review role tags: which side of the adoption wrote it.
const (
	ReviewByDonator = "Bydonator"
	ReviewByAdoptor = "Byadoptor"
)

type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PetID       primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	ReviewerID  primitive.ObjectID `bson:"reviewer_id" json:"reviewer_id"`
	ReviewingID primitive.ObjectID `bson:"reviewing_id" json:"reviewing_id"`
	Rating      int                `bson:"rating" json:"rating"`
	Comment     string             `bson:"comment" json:"comment"`
	Status      string             `bson:"status" json:"status"` // "Bydonator" or "Byadoptor"
	Replies     []ReviewReply      `bson:"replies,omitempty" json:"replies,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type ReviewReply struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
