package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benvon/healthz-api/internal/health"
	"github.com/benvon/healthz-api/internal/models"
	"go.uber.org/zap"
)

type stubProvider struct {
	status   models.HealthStatus
	err      error
	panicVal any
}

func (s stubProvider) Status() (models.HealthStatus, error) {
	if s.panicVal != nil {
		panic(s.panicVal)
	}
	return s.status, s.err
}

func TestHealthHandler_Healthy(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	provider := health.NewProvider(
		health.WithStartTime(start),
		health.WithClock(func() time.Time { return start.Add(90 * time.Second) }),
		health.WithVersionSource(health.StaticVersion("2.3.4")),
	)

	w := httptest.NewRecorder()
	NewHealthHandler(provider, zap.NewNop()).Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != NoCacheValue {
		t.Errorf("Expected Cache-Control %q, got %q", NoCacheValue, cc)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", body["status"])
	}
	if body["uptime"] != 90.0 {
		t.Errorf("Expected uptime 90, got %v", body["uptime"])
	}
	if body["version"] != "2.3.4" {
		t.Errorf("Expected version 2.3.4, got %v", body["version"])
	}
	if body["timestamp"] != "2024-05-01T12:01:30.000Z" {
		t.Errorf("Unexpected timestamp %v", body["timestamp"])
	}
	if _, ok := body["error"]; ok {
		t.Error("Healthy payload must not carry an error field")
	}
}

func TestHealthHandler_Failure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		provider  stubProvider
		wantError string
	}{
		{
			name:      "recognized error surfaced",
			provider:  stubProvider{err: &health.StatusError{Message: "version lookup failed", Err: errors.New("env unreadable")}},
			wantError: "version lookup failed",
		},
		{
			name:      "wrapped recognized error surfaced",
			provider:  stubProvider{err: errors.Join(errors.New("outer"), &health.StatusError{Message: "clock unavailable"})},
			wantError: "clock unavailable",
		},
		{
			name:      "unknown error hidden",
			provider:  stubProvider{err: errors.New("dial tcp 10.0.0.1:5432: refused")},
			wantError: genericHealthFailure,
		},
		{
			name:      "panic recovered",
			provider:  stubProvider{panicVal: "boom"},
			wantError: genericHealthFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			NewHealthHandler(tt.provider, zap.NewNop()).Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != http.StatusInternalServerError {
				t.Errorf("Expected status 500, got %d", w.Code)
			}

			var body models.HealthFailure
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body.Status != models.HealthStateUnhealthy {
				t.Errorf("Expected status unhealthy, got %s", body.Status)
			}
			if body.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, body.Error)
			}
			if body.Timestamp == "" {
				t.Error("Expected a timestamp")
			}
		})
	}
}
