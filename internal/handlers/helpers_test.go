package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benvon/healthz-api/internal/logger"
	"github.com/benvon/healthz-api/internal/models"
)

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		data     any
		validate func(*testing.T, map[string]any)
	}{
		{
			name:   "simple object",
			status: http.StatusOK,
			data:   map[string]string{"message": "hello"},
			validate: func(t *testing.T, body map[string]any) {
				data, ok := body["data"].(map[string]any)
				if !ok {
					t.Fatal("Expected data to be present")
				}
				if msg, ok := data["message"].(string); !ok || msg != "hello" {
					t.Errorf("Expected message 'hello', got %v", data["message"])
				}
			},
		},
		{
			name:   "nil data",
			status: http.StatusCreated,
			data:   nil,
			validate: func(t *testing.T, body map[string]any) {
				if body["data"] != nil {
					t.Error("Expected data to be nil")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			respondJSON(w, tt.status, tt.data)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}

			var body map[string]any
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if success, ok := body["success"].(bool); !ok || !success {
				t.Error("Expected success to be true")
			}
			assertTimestamp(t, body["timestamp"])
			tt.validate(t, body)
		})
	}
}

func TestRespondJSONError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSONError(w, http.StatusBadRequest, "Bad Request", "bad\ninput"+strings.Repeat("x", 1000))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || success {
		t.Error("Expected success to be false")
	}
	if _, ok := body["path"]; ok {
		t.Error("Expected no path in handler error responses")
	}
	if body["error"] != "Bad Request" {
		t.Errorf("Expected error 'Bad Request', got '%v'", body["error"])
	}
	msg, _ := body["message"].(string)
	if strings.Contains(msg, "\n") {
		t.Error("Expected newlines to be stripped from message")
	}
	if !strings.HasSuffix(msg, "...") {
		t.Errorf("Expected truncated message to end with an ellipsis, got %q", msg)
	}
	if len(msg) > logger.MaxErrorMessageLength+len("...") {
		t.Errorf("Expected message to be truncated, got length %d", len(msg))
	}
	assertTimestamp(t, body["timestamp"])
}

// assertTimestamp verifies the value is a UTC ISO-8601 timestamp
func assertTimestamp(t *testing.T, v any) {
	t.Helper()

	s, ok := v.(string)
	if !ok {
		t.Fatalf("Expected timestamp string, got %T", v)
	}
	if _, err := time.Parse(models.TimestampFormat, s); err != nil {
		t.Errorf("Invalid timestamp %q: %v", s, err)
	}
	if !strings.HasSuffix(s, "Z") {
		t.Errorf("Expected UTC timestamp, got %q", s)
	}
}
