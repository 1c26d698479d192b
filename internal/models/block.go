package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockRelationship records one user blocking another. "Whom did I block"
// and "who blocked me" are both queries over this collection.
type BlockRelationship struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BlockerID primitive.ObjectID `bson:"blocker_id" json:"blocker_id"`
	BlockedID primitive.ObjectID `bson:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
