package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawhub/pawhub-server/internal/clients/breeds"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/pawhub/pawhub-server/pkg/logger"
	"github.com/pawhub/pawhub-server/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PetHandler struct {
	Service *services.PetService
	Breeds  *breeds.Client
}

func NewPetHandler(service *services.PetService, breedClient *breeds.Client) *PetHandler {
	return &PetHandler{Service: service, Breeds: breedClient}
}

// SubmitPetHandler files a new listing for admin approval.
// POST /pets
func (h *PetHandler) SubmitPetHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var pet models.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode pet submission: %v", err)
		return
	}
	defer r.Body.Close()

	pet.PostedBy, _ = primitive.ObjectIDFromHex(claims.UserID)

	created, err := h.Service.SubmitPet(r.Context(), &pet)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListPetsHandler lists approved pets, with optional filters.
// GET /pets?type=&area=
func (h *PetHandler) ListPetsHandler(w http.ResponseWriter, r *http.Request) {
	pets, err := h.Service.ListApprovedPets(r.Context(), r.URL.Query().Get("type"), r.URL.Query().Get("area"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

// GetPetHandler fetches a single listing.
// GET /pets/{id}
func (h *PetHandler) GetPetHandler(w http.ResponseWriter, r *http.Request) {
	petID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid pet ID", http.StatusBadRequest)
		return
	}

	pet, err := h.Service.GetPet(r.Context(), petID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

// MyPetsHandler lists the caller's own listings.
// GET /pets/mine
func (h *PetHandler) MyPetsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	pets, err := h.Service.ListMyPets(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

// PendingPetsHandler is the admin approval queue.
// GET /admin/pets/pending
func (h *PetHandler) PendingPetsHandler(w http.ResponseWriter, r *http.Request) {
	pets, err := h.Service.ListPendingPets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

// ApprovePetHandler publishes a pending listing (admin only).
// POST /admin/pets/{id}/approve
func (h *PetHandler) ApprovePetHandler(w http.ResponseWriter, r *http.Request) {
	h.adminDecision(w, r, h.Service.ApprovePet, "Pet approved")
}

// RejectPetHandler removes a pending listing (admin only).
// POST /admin/pets/{id}/reject
func (h *PetHandler) RejectPetHandler(w http.ResponseWriter, r *http.Request) {
	h.adminDecision(w, r, h.Service.RejectPet, "Pet rejected")
}

func (h *PetHandler) adminDecision(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, petID primitive.ObjectID) error, message string) {
	petID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid pet ID", http.StatusBadRequest)
		return
	}
	if err := op(r.Context(), petID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// PredictBreedHandler forwards an image to the external breed classifier.
// POST /pets/predict-breed
func (h *PetHandler) PredictBreedHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type     string `json:"type"`
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if body.ImageURL == "" {
		http.Error(w, "image_url is required", http.StatusBadRequest)
		return
	}

	predictions, err := h.Breeds.Predict(r.Context(), body.Type, body.ImageURL)
	if errors.Is(err, breeds.ErrNotConfigured) {
		http.Error(w, "Breed prediction is not available", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		logger.Log.Errorf("Breed prediction failed: %v", err)
		http.Error(w, "Breed classifier unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"predictions": predictions})
}
