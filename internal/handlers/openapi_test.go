package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benvon/healthz-api/api/openapi"
	"github.com/gorilla/mux"
)

func TestOpenAPIHandler(t *testing.T) {
	t.Parallel()

	r := mux.NewRouter()
	NewOpenAPIHandler(openapi.Document).RegisterRoutes(r)

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/openapi.yaml", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/x-yaml" {
			t.Errorf("Expected application/x-yaml, got %q", ct)
		}
		if w.Body.Len() != len(openapi.Document) {
			t.Error("Expected the embedded document verbatim")
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var doc map[string]any
		if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
			t.Fatalf("Failed to decode JSON document: %v", err)
		}
		paths, ok := doc["paths"].(map[string]any)
		if !ok {
			t.Fatal("Expected paths object")
		}
		for _, p := range []string{"/health", "/healthz", "/readyz", "/version", "/api/v1/cors/evaluate"} {
			if _, ok := paths[p]; !ok {
				t.Errorf("Expected path %s in document", p)
			}
		}
	})
}

func TestOpenAPIHandler_Missing(t *testing.T) {
	t.Parallel()

	h := NewOpenAPIHandler(nil)
	for _, serve := range []http.HandlerFunc{h.ServeYAML, h.ServeJSON} {
		w := httptest.NewRecorder()
		serve(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	}
}
