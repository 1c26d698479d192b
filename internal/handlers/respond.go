package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError translates a service error into its taxonomy status code.
// Internal detail is logged, never sent to the client.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Log.Errorf("Internal error: %v", err)
	} else {
		logger.Log.Warnf("Request failed: %v", err)
	}
	http.Error(w, apperr.Message(err), status)
}
