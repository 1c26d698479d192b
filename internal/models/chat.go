package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatStatus is the adoption workflow state carried by a chat. "delivered"
// and "blocked" are terminal; "passive" needs a fresh approval to restart.
type ChatStatus string

const (
	ChatActive    ChatStatus = "active"
	ChatPassive   ChatStatus = "passive"
	ChatSent      ChatStatus = "sent"
	ChatDelivered ChatStatus = "delivered"
	ChatBlocked   ChatStatus = "blocked"
)

// Valid reports whether s is one of the enumerated statuses.
func (s ChatStatus) Valid() bool {
	switch s {
	case ChatActive, ChatPassive, ChatSent, ChatDelivered, ChatBlocked:
		return true
	}
	return false
}

// Chat coordinates one adopter/adoptee/pet triple.
type Chat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdopterID primitive.ObjectID `bson:"adopter_id" json:"adopter_id"`
	AdopteeID primitive.ObjectID `bson:"adoptee_id" json:"adoptee_id"`
	PetID     primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	Status    ChatStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// ChatListItem is the joined row returned by the chat list endpoints.
type ChatListItem struct {
	ChatID  primitive.ObjectID `json:"chatId"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	PetName string             `json:"petName"`
	PetID   primitive.ObjectID `json:"petId"`
	Status  ChatStatus         `json:"status"`
}
