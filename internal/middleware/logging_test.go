package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
	}{
		{name: "GET request", method: http.MethodGet, path: "/health", handlerStatus: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, path: "/health", handlerStatus: http.StatusOK},
		{name: "404 request", method: http.MethodGet, path: "/notfound", handlerStatus: http.StatusNotFound},
		{name: "unavailable", method: http.MethodGet, path: "/readyz", handlerStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.InfoLevel)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			RequestID(Logging(zap.New(core))(handler)).ServeHTTP(w, req)

			if w.Code != tt.handlerStatus {
				t.Errorf("Expected status %d, got %d", tt.handlerStatus, w.Code)
			}

			entries := logs.FilterMessage("http_request").All()
			if len(entries) != 1 {
				t.Fatalf("Expected 1 http_request entry, got %d", len(entries))
			}
			fields := entries[0].ContextMap()
			if fields["status_code"] != int64(tt.handlerStatus) {
				t.Errorf("Expected status_code %d, got %v", tt.handlerStatus, fields["status_code"])
			}
			if fields["method"] != tt.method {
				t.Errorf("Expected method %s, got %v", tt.method, fields["method"])
			}
			if id, _ := fields["request_id"].(string); id == "" {
				t.Error("Expected a request_id field")
			}
		})
	}
}

func TestLoggingResponseWriter(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError) // superfluous, must not change the captured code
		_, _ = w.Write([]byte("test"))                // Ignore error in test
	})

	core, logs := observer.New(zapcore.InfoLevel)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	Logging(zap.New(core))(handler).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["status_code"] != int64(http.StatusCreated) {
		t.Errorf("Expected logged status 201, got %+v", entries)
	}
}
