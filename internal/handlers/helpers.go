package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/benvon/healthz-api/internal/logger"
	"github.com/benvon/healthz-api/internal/models"
)

// NoCacheValue is sent on every status response so intermediaries never serve a stale probe
const NoCacheValue = "no-cache, no-store, must-revalidate"

// writeJSON sends body as-is, without the success envelope
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Headers are already sent, so an encode failure has no better reporting path
	_ = json.NewEncoder(w).Encode(body)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": models.FormatTimestamp(time.Now()),
	})
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	writeJSON(w, status, models.NewErrorEnvelope(errorType, logger.SanitizeString(message, logger.MaxErrorMessageLength)))
}
