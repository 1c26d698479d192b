package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GuideHandler struct {
	Service *services.GuideService
}

func NewGuideHandler(service *services.GuideService) *GuideHandler {
	return &GuideHandler{Service: service}
}

// CreateGuideHandler publishes a training guide (admin only).
// POST /admin/guides
func (h *GuideHandler) CreateGuideHandler(w http.ResponseWriter, r *http.Request) {
	var guide models.TrainingGuide
	if err := json.NewDecoder(r.Body).Decode(&guide); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateGuide(r.Context(), &guide)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListGuidesHandler lists guides, optionally by pet type.
// GET /guides?type=
func (h *GuideHandler) ListGuidesHandler(w http.ResponseWriter, r *http.Request) {
	guides, err := h.Service.ListGuides(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guides)
}

// GetGuideHandler fetches one guide.
// GET /guides/{id}
func (h *GuideHandler) GetGuideHandler(w http.ResponseWriter, r *http.Request) {
	guideID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid guide ID", http.StatusBadRequest)
		return
	}

	guide, err := h.Service.GetGuide(r.Context(), guideID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guide)
}
