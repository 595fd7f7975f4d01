package handlers

import (
	"net/http"
	"time"

	"github.com/benvon/healthz-api/internal/models"
	"github.com/benvon/healthz-api/internal/version"
)

// VersionResponse is the body of GET /version
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Timestamp string `json:"timestamp"`
}

// VersionHandler reports the build version
type VersionHandler struct {
	version string
	commit  string
}

// NewVersionHandler reports v, or the resolved build version when v is empty
func NewVersionHandler(v string) *VersionHandler {
	if v == "" {
		v = version.Resolve()
	}
	return &VersionHandler{version: v, commit: version.Commit}
}

// Version handles GET /version
func (h *VersionHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version:   h.version,
		Commit:    h.commit,
		Timestamp: models.FormatTimestamp(time.Now()),
	})
}
