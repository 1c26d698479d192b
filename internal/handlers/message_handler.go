package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/pawhub/pawhub-server/pkg/logger"
	"github.com/pawhub/pawhub-server/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageHandler struct {
	Service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{Service: service}
}

// SendMessageHandler appends a message to a chat.
// POST /chats/messages
func (h *MessageHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		ChatID  string `json:"chatId"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode message body: %v", err)
		return
	}
	defer r.Body.Close()

	chatID, err := primitive.ObjectIDFromHex(body.ChatID)
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}
	senderID, _ := primitive.ObjectIDFromHex(claims.UserID)

	msg, err := h.Service.SendMessage(r.Context(), chatID, senderID, body.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// ListMessagesHandler returns a chat transcript, oldest message first.
// GET /messages/{chatId}
func (h *MessageHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	chatID, err := primitive.ObjectIDFromHex(vars["chatId"])
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}
	requesterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	messages, err := h.Service.ListMessages(r.Context(), chatID, requesterID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
