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

// ChatHandler exposes the adoption workflow and chat list endpoints.
type ChatHandler struct {
	Workflow *services.WorkflowService
	Chats    *services.ChatService
}

func NewChatHandler(workflow *services.WorkflowService, chats *services.ChatService) *ChatHandler {
	return &ChatHandler{Workflow: workflow, Chats: chats}
}

// UpdateStatusHandler drives one workflow transition.
// POST /chats/update-status
func (h *ChatHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		ChatID string `json:"chatId"`
		PetID  string `json:"petId"`
		Status string `json:"status"`
		UserID string `json:"userId"`
		Review string `json:"review,omitempty"`
		Rating int    `json:"rating,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode status update body: %v", err)
		return
	}
	defer r.Body.Close()

	chatID, err := primitive.ObjectIDFromHex(body.ChatID)
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}
	petID, err := primitive.ObjectIDFromHex(body.PetID)
	if err != nil {
		http.Error(w, "Invalid pet ID", http.StatusBadRequest)
		return
	}
	userID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	// The acting user is taken from the token, not from the body.
	if body.UserID != claims.UserID {
		http.Error(w, "Forbidden: userId does not match the authenticated user", http.StatusForbidden)
		return
	}

	input := services.StatusUpdateInput{
		ChatID: chatID,
		PetID:  petID,
		Status: models.ChatStatus(body.Status),
		UserID: userID,
		Review: body.Review,
		Rating: body.Rating,
	}
	if err := h.Workflow.UpdateStatus(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}

	logger.Log.Infof("User %s moved chat %s to %s", claims.UserID, body.ChatID, body.Status)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "chat status updated to " + body.Status,
	})
}

// AdopterChatListHandler lists chats where the user is the adopter.
// GET /chats/adopter-chat-list/{userId}?archived=true
func (h *ChatHandler) AdopterChatListHandler(w http.ResponseWriter, r *http.Request) {
	h.chatList(w, r, h.Chats.AdopterChats)
}

// AdopteeChatListHandler lists chats where the user is the donator.
// GET /chats/adoptee-chat-list/{userId}?archived=true
func (h *ChatHandler) AdopteeChatListHandler(w http.ResponseWriter, r *http.Request) {
	h.chatList(w, r, h.Chats.AdopteeChats)
}

func (h *ChatHandler) chatList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, userID primitive.ObjectID, archived bool) ([]models.ChatListItem, error)) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(vars["userId"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if vars["userId"] != claims.UserID {
		http.Error(w, "Forbidden: you can only list your own chats", http.StatusForbidden)
		return
	}

	archived := r.URL.Query().Get("archived") == "true"

	items, err := list(r.Context(), userID, archived)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
