package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/pawhub/pawhub-server/pkg/logger"
	"github.com/pawhub/pawhub-server/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BlockHandler struct {
	Service *services.BlockService
}

func NewBlockHandler(service *services.BlockService) *BlockHandler {
	return &BlockHandler{Service: service}
}

// BlockUserHandler blocks another user and wipes the shared history.
// POST /users/block
func (h *BlockHandler) BlockUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	targetID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	currentID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.BlockUser(r.Context(), currentID, targetID); err != nil {
		writeError(w, err)
		return
	}

	logger.Log.Infof("User %s blocked user %s", claims.UserID, body.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User blocked"})
}

// UnblockUserHandler reverses a block by the blocked user's email.
// POST /users/unblock
func (h *BlockHandler) UnblockUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	currentID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if err := h.Service.UnblockUserByEmail(r.Context(), currentID, body.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User unblocked"})
}
