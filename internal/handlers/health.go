package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/benvon/healthz-api/internal/health"
	"github.com/benvon/healthz-api/internal/models"
	"github.com/benvon/healthz-api/internal/request"
	"go.uber.org/zap"
)

// genericHealthFailure is reported when the failure carries no client-safe message
const genericHealthFailure = "Health check failed"

// HealthHandler serves the liveness status. CORS headers and preflight answers are
// added by the router's CORS middleware.
type HealthHandler struct {
	provider health.StatusProvider
	log      *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(provider health.StatusProvider, log *zap.Logger) *HealthHandler {
	return &HealthHandler{provider: provider, log: log}
}

// Health handles GET /health and /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", NoCacheValue)

	status, err := health.SafeStatus(h.provider)
	if err != nil {
		h.log.Error("health_status_failed",
			zap.Error(err),
			zap.String("request_id", request.RequestID(r)),
		)
		writeJSON(w, http.StatusInternalServerError, models.HealthFailure{
			Status:    models.HealthStateUnhealthy,
			Timestamp: models.FormatTimestamp(time.Now()),
			Error:     failureMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func failureMessage(err error) string {
	var statusErr *health.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return genericHealthFailure
}
