package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account on the adoption marketplace. Block state lives
// in the block_relationships collection, not on the user document.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	HashedPassword string               `bson:"hashed_password" json:"-"`
	Role           string               `bson:"role" json:"role"`
	Area           string               `bson:"area,omitempty" json:"area,omitempty"`
	PreferredTypes []string             `bson:"preferred_types,omitempty" json:"preferred_types,omitempty"`
	Wishlist       []primitive.ObjectID `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	VerifyToken    string               `bson:"verify_token,omitempty" json:"-"`
	IsVerified     bool                 `bson:"is_verified" json:"is_verified"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}
