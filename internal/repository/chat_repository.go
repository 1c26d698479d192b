package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ChatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{collection: db.Collection("chats")}
}

func (r *ChatRepository) CreateChat(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	chat.CreatedAt = time.Now()
	chat.UpdatedAt = time.Now()
	chat.Status = models.ChatActive

	result, err := r.collection.InsertOne(ctx, chat)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert chat")
		return nil, fmt.Errorf("failed to insert chat: %v", err)
	}
	chat.ID = result.InsertedID.(primitive.ObjectID)
	return chat, nil
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	var chat models.Chat
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("chat not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find chat: %v", err)
	}
	return &chat, nil
}

// UpdateStatusIf moves the chat to the target status only when its current
// status is one of from. Returns false when the guard did not match, which
// means another request already moved the chat.
func (r *ChatRepository) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from []models.ChatStatus, to models.ChatStatus) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
	)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"chatID": id.Hex(),
			"to":     to,
			"error":  err,
		}).Error("Failed to update chat status")
		return false, fmt.Errorf("failed to update chat status: %v", err)
	}
	return result.MatchedCount == 1, nil
}

// DeleteChatsForAdoption removes every chat record matching one
// pet/adoptee/adopter triple (in-chat block).
func (r *ChatRepository) DeleteChatsForAdoption(ctx context.Context, petID, adopteeID, adopterID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{
		"pet_id":     petID,
		"adoptee_id": adopteeID,
		"adopter_id": adopterID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete chats: %v", err)
	}
	return nil
}

// BlockChatsBetween marks every chat between the two users, in either role
// pairing, as blocked and returns the affected chat IDs so their messages
// can be wiped.
func (r *ChatRepository) BlockChatsBetween(ctx context.Context, userA, userB primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"adopter_id": userA, "adoptee_id": userB},
			{"adopter_id": userB, "adoptee_id": userA},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find chats between users: %v", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var chat models.Chat
		if err := cursor.Decode(&chat); err != nil {
			return nil, err
		}
		ids = append(ids, chat.ID)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"status": models.ChatBlocked, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to block chats: %v", err)
	}
	return ids, nil
}

// ListChatsByAdopter returns the adopter's chats in any of the given states.
func (r *ChatRepository) ListChatsByAdopter(ctx context.Context, adopterID primitive.ObjectID, statuses []models.ChatStatus) ([]models.Chat, error) {
	return r.listChats(ctx, bson.M{"adopter_id": adopterID, "status": bson.M{"$in": statuses}})
}

// ListChatsByAdoptee returns the adoptee's chats in any of the given states.
func (r *ChatRepository) ListChatsByAdoptee(ctx context.Context, adopteeID primitive.ObjectID, statuses []models.ChatStatus) ([]models.Chat, error) {
	return r.listChats(ctx, bson.M{"adoptee_id": adopteeID, "status": bson.M{"$in": statuses}})
}

func (r *ChatRepository) listChats(ctx context.Context, filter bson.M) ([]models.Chat, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %v", err)
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("failed to decode chats: %v", err)
	}
	return chats, nil
}
