package services

import (
	"context"

	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService serves the role-scoped chat lists joined with counterpart and
// pet details.
type ChatService struct {
	chats ChatStore
	users UserStore
	pets  PetStore
}

func NewChatService(chats ChatStore, users UserStore, pets PetStore) *ChatService {
	return &ChatService{chats: chats, users: users, pets: pets}
}

// AdopterChats lists chats visible to an adopter. The active view keeps
// "sent" chats visible as awaiting delivery confirmation.
func (s *ChatService) AdopterChats(ctx context.Context, userID primitive.ObjectID, archived bool) ([]models.ChatListItem, error) {
	statuses := []models.ChatStatus{models.ChatActive, models.ChatSent}
	if archived {
		statuses = []models.ChatStatus{models.ChatSent, models.ChatDelivered}
	}

	chats, err := s.chats.ListChatsByAdopter(ctx, userID, statuses)
	if err != nil {
		return nil, err
	}
	return s.buildListItems(ctx, chats, false), nil
}

// AdopteeChats lists chats visible to a donator. Once a pet is sent the
// donator's active inbox for it is closed pending the outcome.
func (s *ChatService) AdopteeChats(ctx context.Context, userID primitive.ObjectID, archived bool) ([]models.ChatListItem, error) {
	statuses := []models.ChatStatus{models.ChatActive}
	if archived {
		statuses = []models.ChatStatus{models.ChatDelivered}
	}

	chats, err := s.chats.ListChatsByAdoptee(ctx, userID, statuses)
	if err != nil {
		return nil, err
	}
	return s.buildListItems(ctx, chats, true), nil
}

// buildListItems joins each chat with its counterpart's identity and the pet
// name. Rows whose user or pet has vanished are skipped, not fatal.
func (s *ChatService) buildListItems(ctx context.Context, chats []models.Chat, counterpartIsAdopter bool) []models.ChatListItem {
	items := make([]models.ChatListItem, 0, len(chats))
	for _, chat := range chats {
		counterpartID := chat.AdopteeID
		if counterpartIsAdopter {
			counterpartID = chat.AdopterID
		}

		counterpart, err := s.users.GetUserByID(ctx, counterpartID)
		if err != nil {
			logrus.WithField("chatID", chat.ID.Hex()).Warnf("Skipping chat row, counterpart missing: %v", err)
			continue
		}
		pet, err := s.pets.GetPetByID(ctx, chat.PetID)
		if err != nil {
			logrus.WithField("chatID", chat.ID.Hex()).Warnf("Skipping chat row, pet missing: %v", err)
			continue
		}

		items = append(items, models.ChatListItem{
			ChatID:  chat.ID,
			Name:    counterpart.Username,
			Email:   counterpart.Email,
			PetName: pet.Name,
			PetID:   pet.ID,
			Status:  chat.Status,
		})
	}
	return items
}
