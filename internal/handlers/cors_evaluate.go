package handlers

import (
	"net/http"

	"github.com/benvon/healthz-api/internal/cors"
	"github.com/benvon/healthz-api/internal/logger"
	"go.uber.org/zap"
)

// PolicySource returns the CORS policy currently in force
type PolicySource interface {
	Policy() *cors.Policy
}

// CORSEvaluation is the data of GET /api/v1/cors/evaluate
type CORSEvaluation struct {
	Origin     string         `json:"origin"`
	OriginMode string         `json:"origin_mode"`
	Allowed    bool           `json:"allowed"`
	Headers    cors.HeaderSet `json:"headers"`
}

// CORSHandler lets operators check what the active policy emits for an origin
type CORSHandler struct {
	source PolicySource
	log    *zap.Logger
}

// NewCORSHandler creates a new CORS evaluation handler
func NewCORSHandler(source PolicySource, log *zap.Logger) *CORSHandler {
	return &CORSHandler{source: source, log: log}
}

// Evaluate handles GET /api/v1/cors/evaluate?origin=...
func (h *CORSHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	if len(origin) > logger.MaxOriginLength {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "origin is too long")
		return
	}

	policy := h.source.Policy()
	headers := policy.ComputeHeaders(origin)
	_, allowed := headers[cors.HeaderAllowOrigin]

	h.log.Debug("cors_evaluated",
		zap.String("origin", logger.SanitizeOrigin(origin)),
		zap.Bool("allowed", allowed),
	)

	respondJSON(w, http.StatusOK, CORSEvaluation{
		Origin:     origin,
		OriginMode: policy.Config().Origin.Mode.String(),
		Allowed:    allowed,
		Headers:    headers,
	})
}
