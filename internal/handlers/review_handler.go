package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/pawhub/pawhub-server/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: service}
}

// ReviewsByPetHandler lists a pet's adoption reviews.
// GET /reviews/pet/{petId}
func (h *ReviewHandler) ReviewsByPetHandler(w http.ResponseWriter, r *http.Request) {
	petID, err := primitive.ObjectIDFromHex(mux.Vars(r)["petId"])
	if err != nil {
		http.Error(w, "Invalid pet ID", http.StatusBadRequest)
		return
	}

	reviews, err := h.Service.ListReviewsByPet(r.Context(), petID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// ReplyHandler appends a reply to a review.
// POST /reviews/{id}/reply
func (h *ReviewHandler) ReplyHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if err := h.Service.ReplyToReview(r.Context(), reviewID, userID, body.Comment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reply added"})
}
