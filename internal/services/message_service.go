package services

import (
	"context"
	"fmt"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageService appends messages to chats and serves transcripts.
type MessageService struct {
	messages      MessageStore
	chats         ChatStore
	users         UserStore
	blocks        BlockStore
	notifications NotificationStore
}

func NewMessageService(messages MessageStore, chats ChatStore, users UserStore, blocks BlockStore, notifications NotificationStore) *MessageService {
	return &MessageService{
		messages:      messages,
		chats:         chats,
		users:         users,
		blocks:        blocks,
		notifications: notifications,
	}
}

// SendMessage persists a message and notifies the other participant.
func (s *MessageService) SendMessage(ctx context.Context, chatID, senderID primitive.ObjectID, content string) (*models.Message, error) {
	if content == "" {
		return nil, apperr.Invalid("message content is required")
	}

	chat, err := s.chats.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	var recipientID primitive.ObjectID
	switch senderID {
	case chat.AdopterID:
		recipientID = chat.AdopteeID
	case chat.AdopteeID:
		recipientID = chat.AdopterID
	default:
		return nil, apperr.Forbidden("sender is not a participant of this chat")
	}

	msg, err := s.messages.CreateMessage(ctx, &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	sender, err := s.users.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	notif := &models.Notification{
		UserID:  recipientID,
		Message: fmt.Sprintf("New message from %s", sender.Username),
	}
	if err := s.notifications.CreateNotification(ctx, notif); err != nil {
		logrus.WithError(err).Error("Message stored but recipient notification failed")
		return nil, apperr.Internal("message stored but notification failed", err)
	}

	return msg, nil
}

// ListMessages returns a chat's transcript oldest first. A requester who has
// been blocked by the counterpart is refused.
func (s *MessageService) ListMessages(ctx context.Context, chatID, requesterID primitive.ObjectID) ([]models.Message, error) {
	chat, err := s.chats.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	var counterpartID primitive.ObjectID
	switch requesterID {
	case chat.AdopterID:
		counterpartID = chat.AdopteeID
	case chat.AdopteeID:
		counterpartID = chat.AdopterID
	default:
		return nil, apperr.Forbidden("requester is not a participant of this chat")
	}

	blocked, err := s.blocks.BlockExists(ctx, counterpartID, requesterID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperr.Forbidden("you have been blocked by this user")
	}

	return s.messages.ListMessagesByChat(ctx, chatID)
}
