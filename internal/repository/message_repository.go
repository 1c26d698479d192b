package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{collection: db.Collection("messages")}
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// ListMessagesByChat returns the transcript oldest first. The ascending
// order is part of the API contract.
func (r *MessageRepository) ListMessagesByChat(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	for cursor.Next(ctx) {
		var msg models.Message
		if err := cursor.Decode(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// DeleteMessagesByChat wipes one chat's transcript.
func (r *MessageRepository) DeleteMessagesByChat(ctx context.Context, chatID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"chat_id": chatID})
	if err != nil {
		return fmt.Errorf("failed to delete messages: %v", err)
	}
	return nil
}

// DeleteMessagesByChats wipes the transcripts of several chats at once.
func (r *MessageRepository) DeleteMessagesByChats(ctx context.Context, chatIDs []primitive.ObjectID) error {
	if len(chatIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"chat_id": bson.M{"$in": chatIDs}})
	if err != nil {
		return fmt.Errorf("failed to delete messages: %v", err)
	}
	return nil
}
