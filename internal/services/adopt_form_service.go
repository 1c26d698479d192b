package services

import (
	"context"
	"fmt"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdoptFormService handles adoption applications. Approving one is the only
// way a chat comes into existence.
type AdoptFormService struct {
	forms         AdoptFormStore
	pets          PetStore
	chats         ChatStore
	users         UserStore
	notifications NotificationStore
}

func NewAdoptFormService(forms AdoptFormStore, pets PetStore, chats ChatStore, users UserStore, notifications NotificationStore) *AdoptFormService {
	return &AdoptFormService{
		forms:         forms,
		pets:          pets,
		chats:         chats,
		users:         users,
		notifications: notifications,
	}
}

// SubmitForm files one adopter's application for one pet.
func (s *AdoptFormService) SubmitForm(ctx context.Context, form *models.AdoptForm) (*models.AdoptForm, error) {
	if form.Email == "" || form.Phone == "" {
		return nil, apperr.Invalid("contact details are required")
	}

	pet, err := s.pets.GetPetByID(ctx, form.PetID)
	if err != nil {
		return nil, err
	}
	if pet.Status != models.PetApproved {
		return nil, apperr.Conflict("pet is not open for adoption")
	}
	if pet.PostedBy == form.AdopterID {
		return nil, apperr.Invalid("you cannot apply for your own listing")
	}

	if existing, _ := s.forms.GetFormByPetAndAdopter(ctx, form.PetID, form.AdopterID); existing != nil {
		return nil, apperr.Conflict("you have already applied for this pet")
	}

	return s.forms.CreateForm(ctx, form)
}

// ListFormsByPet shows a pet's applications to its donator or an admin.
func (s *AdoptFormService) ListFormsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.AdoptForm, error) {
	return s.forms.ListFormsByPet(ctx, petID)
}

// ListMyForms returns the caller's own applications.
func (s *AdoptFormService) ListMyForms(ctx context.Context, adopterID primitive.ObjectID) ([]models.AdoptForm, error) {
	return s.forms.ListFormsByAdopter(ctx, adopterID)
}

// ApproveForm accepts one application: it opens an active chat between the
// adopter and the pet's donator and notifies both sides.
func (s *AdoptFormService) ApproveForm(ctx context.Context, formID primitive.ObjectID) error {
	form, err := s.forms.GetFormByID(ctx, formID)
	if err != nil {
		return err
	}

	pet, err := s.pets.GetPetByID(ctx, form.PetID)
	if err != nil {
		return err
	}

	adopter, err := s.users.GetUserByID(ctx, form.AdopterID)
	if err != nil {
		return err
	}
	adoptee, err := s.users.GetUserByID(ctx, pet.PostedBy)
	if err != nil {
		return err
	}

	if err := s.forms.UpdateFormStatus(ctx, formID, "approved"); err != nil {
		return err
	}

	chat, err := s.chats.CreateChat(ctx, &models.Chat{
		AdopterID: adopter.ID,
		AdopteeID: adoptee.ID,
		PetID:     pet.ID,
	})
	if err != nil {
		return err
	}

	for userID, text := range map[primitive.ObjectID]string{
		adopter.ID: fmt.Sprintf("Your application for %s was approved, you can now chat with %s", pet.Name, adoptee.Username),
		adoptee.ID: fmt.Sprintf("%s was approved to adopt %s", adopter.Username, pet.Name),
	} {
		notif := &models.Notification{UserID: userID, Message: text}
		if err := s.notifications.CreateNotification(ctx, notif); err != nil {
			logrus.WithError(err).Warn("Failed to send approval notification")
		}
	}

	logrus.WithFields(logrus.Fields{
		"formID": formID.Hex(),
		"chatID": chat.ID.Hex(),
	}).Info("Adopt form approved, chat opened")
	return nil
}

// RejectForm declines one application and tells the adopter.
func (s *AdoptFormService) RejectForm(ctx context.Context, formID primitive.ObjectID) error {
	form, err := s.forms.GetFormByID(ctx, formID)
	if err != nil {
		return err
	}

	pet, err := s.pets.GetPetByID(ctx, form.PetID)
	if err != nil {
		return err
	}

	if err := s.forms.DeleteForm(ctx, formID); err != nil {
		return err
	}

	notif := &models.Notification{
		UserID:  form.AdopterID,
		Message: "Your application for " + pet.Name + " was declined",
	}
	if err := s.notifications.CreateNotification(ctx, notif); err != nil {
		logrus.WithError(err).Warn("Failed to send rejection notification")
	}
	return nil
}
