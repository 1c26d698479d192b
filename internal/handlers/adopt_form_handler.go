package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/pawhub/pawhub-server/pkg/logger"
	"github.com/pawhub/pawhub-server/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdoptFormHandler struct {
	Service *services.AdoptFormService
}

func NewAdoptFormHandler(service *services.AdoptFormService) *AdoptFormHandler {
	return &AdoptFormHandler{Service: service}
}

// SubmitFormHandler files an adoption application.
// POST /adopt-forms
func (h *AdoptFormHandler) SubmitFormHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var form models.AdoptForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode adopt form: %v", err)
		return
	}
	defer r.Body.Close()

	form.AdopterID, _ = primitive.ObjectIDFromHex(claims.UserID)

	created, err := h.Service.SubmitForm(r.Context(), &form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// MyFormsHandler lists the caller's applications.
// GET /adopt-forms/mine
func (h *AdoptFormHandler) MyFormsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	adopterID, _ := primitive.ObjectIDFromHex(claims.UserID)
	forms, err := h.Service.ListMyForms(r.Context(), adopterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// FormsByPetHandler lists a pet's applications.
// GET /adopt-forms/pet/{petId}
func (h *AdoptFormHandler) FormsByPetHandler(w http.ResponseWriter, r *http.Request) {
	petID, err := primitive.ObjectIDFromHex(mux.Vars(r)["petId"])
	if err != nil {
		http.Error(w, "Invalid pet ID", http.StatusBadRequest)
		return
	}

	forms, err := h.Service.ListFormsByPet(r.Context(), petID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// ApproveFormHandler accepts one application and opens the chat (admin only).
// POST /admin/adopt-forms/{id}/approve
func (h *AdoptFormHandler) ApproveFormHandler(w http.ResponseWriter, r *http.Request) {
	h.decision(w, r, h.Service.ApproveForm, "Adoption request approved")
}

// RejectFormHandler declines one application (admin only).
// POST /admin/adopt-forms/{id}/reject
func (h *AdoptFormHandler) RejectFormHandler(w http.ResponseWriter, r *http.Request) {
	h.decision(w, r, h.Service.RejectForm, "Adoption request rejected")
}

func (h *AdoptFormHandler) decision(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, formID primitive.ObjectID) error, message string) {
	formID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid form ID", http.StatusBadRequest)
		return
	}
	if err := op(r.Context(), formID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
