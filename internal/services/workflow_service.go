package services

import (
	"context"
	"fmt"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/pawhub/pawhub-server/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusUpdateInput is the request for one workflow transition.
type StatusUpdateInput struct {
	ChatID primitive.ObjectID
	PetID  primitive.ObjectID
	Status models.ChatStatus
	UserID primitive.ObjectID
	Review string
	Rating int
}

// WorkflowService drives the adoption lifecycle of a chat: the legal status
// transitions and their side effects on pets, adopt forms, reviews,
// notifications and block relationships.
type WorkflowService struct {
	chats         ChatStore
	pets          PetStore
	forms         AdoptFormStore
	messages      MessageStore
	users         UserStore
	blocks        BlockStore
	notifications NotificationStore
	reviews       ReviewStore
	txn           Txn

	// sendMail is swapped out in tests.
	sendMail func(to, subject, body string) error
}

func NewWorkflowService(
	chats ChatStore,
	pets PetStore,
	forms AdoptFormStore,
	messages MessageStore,
	users UserStore,
	blocks BlockStore,
	notifications NotificationStore,
	reviews ReviewStore,
	txn Txn,
) *WorkflowService {
	return &WorkflowService{
		chats:         chats,
		pets:          pets,
		forms:         forms,
		messages:      messages,
		users:         users,
		blocks:        blocks,
		notifications: notifications,
		reviews:       reviews,
		txn:           txn,
		sendMail:      email.SendEmail,
	}
}

// UpdateStatus applies one transition. The status write is conditional on
// the expected prior status, and all side effects run in the same
// transaction, so a lost race or a repeated terminal request fails with a
// conflict and applies nothing.
func (s *WorkflowService) UpdateStatus(ctx context.Context, input StatusUpdateInput) error {
	if input.ChatID.IsZero() || input.PetID.IsZero() || input.UserID.IsZero() || input.Status == "" {
		return apperr.Invalid("chatId, petId, status and userId are required")
	}
	if !input.Status.Valid() {
		return apperr.Invalid("invalid status value")
	}

	chat, err := s.chats.GetChatByID(ctx, input.ChatID)
	if err != nil {
		return err
	}
	if chat.PetID != input.PetID {
		return apperr.Invalid("pet does not match chat")
	}

	adopter, err := s.users.GetUserByID(ctx, chat.AdopterID)
	if err != nil {
		return err
	}
	adoptee, err := s.users.GetUserByID(ctx, chat.AdopteeID)
	if err != nil {
		return err
	}
	pet, err := s.pets.GetPetByID(ctx, chat.PetID)
	if err != nil {
		return err
	}

	switch input.Status {
	case models.ChatSent:
		return s.markSent(ctx, chat, adopter, adoptee, pet, input)
	case models.ChatDelivered:
		return s.markDelivered(ctx, chat, adopter, adoptee, pet, input)
	case models.ChatPassive:
		return s.cancel(ctx, chat, adopter, adoptee, pet)
	case models.ChatBlocked:
		return s.block(ctx, chat, adopter, adoptee, pet, input.UserID)
	case models.ChatActive:
		return apperr.Invalid("chats cannot be moved back to active; a new approval is required")
	}
	return apperr.Invalid("invalid status value")
}

// markSent: active -> sent. The donator has handed the pet over to delivery.
func (s *WorkflowService) markSent(ctx context.Context, chat *models.Chat, adopter, adoptee *models.User, pet *models.Pet, input StatusUpdateInput) error {
	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		moved, err := s.chats.UpdateStatusIf(ctx, chat.ID, []models.ChatStatus{models.ChatActive}, models.ChatSent)
		if err != nil {
			return err
		}
		if !moved {
			return apperr.Conflict("chat is not active")
		}

		if err := s.pets.UpdateStatus(ctx, pet.ID, models.PetSent); err != nil {
			return err
		}

		text := fmt.Sprintf("%s has been sent to %s by %s", pet.Name, adopter.Username, adoptee.Username)
		if err := s.notifyBoth(ctx, chat, text); err != nil {
			return err
		}

		if input.Review != "" {
			review := &models.Review{
				PetID:       pet.ID,
				ReviewerID:  chat.AdopteeID,
				ReviewingID: chat.AdopterID,
				Rating:      input.Rating,
				Comment:     input.Review,
				Status:      models.ReviewByDonator,
			}
			if _, err := s.reviews.CreateReview(ctx, review); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"chatID": chat.ID.Hex(),
		"petID":  pet.ID.Hex(),
	}).Info("Chat marked as sent")
	return nil
}

// markDelivered: sent -> delivered. The adopter confirmed receipt; the
// listing contact is rewritten from their adopt form and all remaining
// applications for the pet are cleared.
func (s *WorkflowService) markDelivered(ctx context.Context, chat *models.Chat, adopter, adoptee *models.User, pet *models.Pet, input StatusUpdateInput) error {
	form, err := s.forms.GetFormByPetAndAdopter(ctx, chat.PetID, chat.AdopterID)
	if err != nil {
		return err
	}

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		moved, err := s.chats.UpdateStatusIf(ctx, chat.ID, []models.ChatStatus{models.ChatSent}, models.ChatDelivered)
		if err != nil {
			return err
		}
		if !moved {
			return apperr.Conflict("chat is not awaiting delivery")
		}

		if err := s.pets.SetAdoptionOutcome(ctx, pet.ID, form.Email, form.Phone); err != nil {
			return err
		}
		if err := s.forms.DeleteFormsByPet(ctx, pet.ID); err != nil {
			return err
		}

		text := fmt.Sprintf("%s has been delivered to %s", pet.Name, adopter.Username)
		if err := s.notifyBoth(ctx, chat, text); err != nil {
			return err
		}

		if input.Review != "" {
			review := &models.Review{
				PetID:       pet.ID,
				ReviewerID:  chat.AdopterID,
				ReviewingID: chat.AdopteeID,
				Rating:      input.Rating,
				Comment:     input.Review,
				Status:      models.ReviewByAdoptor,
			}
			if _, err := s.reviews.CreateReview(ctx, review); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Mail is not transactional; a failure here is logged, not surfaced.
	body := fmt.Sprintf("Congratulations %s! The adoption of %s is complete.", adopter.Username, pet.Name)
	if err := s.sendMail(adopter.Email, "Adoption finalized", body); err != nil {
		logrus.WithError(err).Warn("Failed to send adoption-finalized email")
	}

	logrus.WithFields(logrus.Fields{
		"chatID": chat.ID.Hex(),
		"petID":  pet.ID.Hex(),
	}).Info("Chat marked as delivered")
	return nil
}

// cancel: active|sent -> passive. Either party backed out; the listing
// re-opens and only this adopter's application is withdrawn.
func (s *WorkflowService) cancel(ctx context.Context, chat *models.Chat, adopter, adoptee *models.User, pet *models.Pet) error {
	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		moved, err := s.chats.UpdateStatusIf(ctx, chat.ID, []models.ChatStatus{models.ChatActive, models.ChatSent}, models.ChatPassive)
		if err != nil {
			return err
		}
		if !moved {
			return apperr.Conflict("chat can no longer be cancelled")
		}

		if err := s.pets.UpdateStatus(ctx, pet.ID, models.PetApproved); err != nil {
			return err
		}
		if err := s.forms.DeleteFormsByPetAndAdopter(ctx, pet.ID, chat.AdopterID); err != nil {
			return err
		}

		text := fmt.Sprintf("The adoption of %s between %s and %s was cancelled", pet.Name, adoptee.Username, adopter.Username)
		return s.notifyBoth(ctx, chat, text)
	})
	if err != nil {
		return err
	}

	logrus.WithField("chatID", chat.ID.Hex()).Info("Chat cancelled")
	return nil
}

// block: active -> blocked. Only the adoptee may block; the chat and its
// transcript are deleted for privacy and the listing re-opens.
func (s *WorkflowService) block(ctx context.Context, chat *models.Chat, adopter, adoptee *models.User, pet *models.Pet, callerID primitive.ObjectID) error {
	if callerID != chat.AdopteeID {
		return apperr.Forbidden("only the donator can block the adopter")
	}

	blocked, err := s.blocks.BlockExists(ctx, chat.AdopteeID, chat.AdopterID)
	if err != nil {
		return err
	}
	if blocked {
		return apperr.Conflict("user is already blocked")
	}

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		moved, err := s.chats.UpdateStatusIf(ctx, chat.ID, []models.ChatStatus{models.ChatActive}, models.ChatBlocked)
		if err != nil {
			return err
		}
		if !moved {
			return apperr.Conflict("chat is not active")
		}

		if err := s.blocks.CreateBlock(ctx, chat.AdopteeID, chat.AdopterID); err != nil {
			return err
		}
		if err := s.pets.UpdateStatus(ctx, pet.ID, models.PetApproved); err != nil {
			return err
		}
		if err := s.forms.DeleteFormsByPetAndAdopter(ctx, pet.ID, chat.AdopterID); err != nil {
			return err
		}
		if err := s.messages.DeleteMessagesByChat(ctx, chat.ID); err != nil {
			return err
		}
		return s.chats.DeleteChatsForAdoption(ctx, pet.ID, chat.AdopteeID, chat.AdopterID)
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"chatID":    chat.ID.Hex(),
		"adopterID": chat.AdopterID.Hex(),
		"adopteeID": chat.AdopteeID.Hex(),
	}).Info("Adopter blocked from chat")
	return nil
}

func (s *WorkflowService) notifyBoth(ctx context.Context, chat *models.Chat, text string) error {
	for _, userID := range []primitive.ObjectID{chat.AdopterID, chat.AdopteeID} {
		notif := &models.Notification{
			UserID:  userID,
			Message: text,
		}
		if err := s.notifications.CreateNotification(ctx, notif); err != nil {
			return fmt.Errorf("failed to notify user %s: %v", userID.Hex(), err)
		}
	}
	return nil
}
