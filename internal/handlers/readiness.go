package handlers

import (
	"context"
	"net/http"

	"github.com/benvon/healthz-api/internal/models"
	"go.uber.org/zap"
)

// ReadinessChecker reports the state of the service's dependencies
type ReadinessChecker interface {
	Check(ctx context.Context) models.ReadinessStatus
}

// ReadinessHandler serves GET /readyz
type ReadinessHandler struct {
	checker ReadinessChecker
	log     *zap.Logger
}

// NewReadinessHandler creates a new readiness handler
func NewReadinessHandler(checker ReadinessChecker, log *zap.Logger) *ReadinessHandler {
	return &ReadinessHandler{checker: checker, log: log}
}

// Ready returns 200 when every configured dependency answers, 503 otherwise
func (h *ReadinessHandler) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", NoCacheValue)

	status := h.checker.Check(r.Context())
	code := http.StatusOK
	if status.Status != models.HealthStateHealthy {
		code = http.StatusServiceUnavailable
		h.log.Warn("readiness_check_failed", zap.Any("checks", status.Checks))
	}

	writeJSON(w, code, status)
}
