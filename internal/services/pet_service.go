package services

import (
	"context"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetService handles listing submission and the admin approval flow.
type PetService struct {
	pets          PetStore
	notifications NotificationStore
}

func NewPetService(pets PetStore, notifications NotificationStore) *PetService {
	return &PetService{pets: pets, notifications: notifications}
}

// SubmitPet creates a listing awaiting admin approval.
func (s *PetService) SubmitPet(ctx context.Context, pet *models.Pet) (*models.Pet, error) {
	if pet.Name == "" || pet.Type == "" || pet.Area == "" {
		return nil, apperr.Invalid("name, type and area are required")
	}
	if pet.Email == "" || pet.Phone == "" {
		return nil, apperr.Invalid("owner contact details are required")
	}
	return s.pets.CreatePet(ctx, pet)
}

// ApprovePet publishes a pending listing.
func (s *PetService) ApprovePet(ctx context.Context, petID primitive.ObjectID) error {
	pet, err := s.pets.GetPetByID(ctx, petID)
	if err != nil {
		return err
	}
	if pet.Status != models.PetPending {
		return apperr.Conflict("pet is not awaiting approval")
	}

	if err := s.pets.UpdateStatus(ctx, petID, models.PetApproved); err != nil {
		return err
	}

	notif := &models.Notification{
		UserID:  pet.PostedBy,
		Message: "Your listing for " + pet.Name + " was approved",
	}
	if err := s.notifications.CreateNotification(ctx, notif); err != nil {
		logrus.WithError(err).Warn("Failed to notify owner about approval")
	}
	return nil
}

// RejectPet removes a pending listing.
func (s *PetService) RejectPet(ctx context.Context, petID primitive.ObjectID) error {
	pet, err := s.pets.GetPetByID(ctx, petID)
	if err != nil {
		return err
	}
	if pet.Status != models.PetPending {
		return apperr.Conflict("pet is not awaiting approval")
	}

	if err := s.pets.DeletePet(ctx, petID); err != nil {
		return err
	}

	notif := &models.Notification{
		UserID:  pet.PostedBy,
		Message: "Your listing for " + pet.Name + " was rejected",
	}
	if err := s.notifications.CreateNotification(ctx, notif); err != nil {
		logrus.WithError(err).Warn("Failed to notify owner about rejection")
	}
	return nil
}

// GetPet fetches a single listing.
func (s *PetService) GetPet(ctx context.Context, petID primitive.ObjectID) (*models.Pet, error) {
	return s.pets.GetPetByID(ctx, petID)
}

// ListApprovedPets returns publicly visible listings, optionally filtered.
func (s *PetService) ListApprovedPets(ctx context.Context, petType, area string) ([]models.Pet, error) {
	return s.pets.ListPets(ctx, models.PetApproved, petType, area)
}

// ListPendingPets is the admin approval queue.
func (s *PetService) ListPendingPets(ctx context.Context) ([]models.Pet, error) {
	return s.pets.ListPets(ctx, models.PetPending, "", "")
}

// ListMyPets returns the caller's own listings in any status.
func (s *PetService) ListMyPets(ctx context.Context, userID primitive.ObjectID) ([]models.Pet, error) {
	return s.pets.ListPetsByUser(ctx, userID)
}
