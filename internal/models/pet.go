package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetStatus tracks a listing through the adoption lifecycle.
type PetStatus string

const (
	PetPending   PetStatus = "Pending"
	PetApproved  PetStatus = "Approved"
	PetSent      PetStatus = "Sent"
	PetDelivered PetStatus = "Delivered"
)

type Pet struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Type          string             `bson:"type" json:"type"`
	Breed         string             `bson:"breed" json:"breed"`
	Area          string             `bson:"area" json:"area"`
	Division      string             `bson:"division" json:"division"`
	Justification string             `bson:"justification" json:"justification"`
	Email         string             `bson:"email" json:"email"` // current contact; rewritten on delivery
	Phone         string             `bson:"phone" json:"phone"`
	Filename      string             `bson:"filename" json:"filename"` // image URL
	Status        PetStatus          `bson:"status" json:"status"`
	PostedBy      primitive.ObjectID `bson:"posted_by" json:"posted_by"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
