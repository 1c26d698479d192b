package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdoptForm is one prospective adopter's application for one pet.
type AdoptForm struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PetID         primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	AdopterID     primitive.ObjectID `bson:"adopter_id" json:"adopter_id"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	LivingSpace   string             `bson:"living_space" json:"living_space"`
	HasOtherPets  bool               `bson:"has_other_pets" json:"has_other_pets"`
	PetExperience string             `bson:"pet_experience" json:"pet_experience"`
	FamilySize    int                `bson:"family_size" json:"family_size"`
	Reason        string             `bson:"reason" json:"reason"`
	Status        string             `bson:"status" json:"status"` // "pending", "approved"
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
