package middleware

import (
	"net/http"

	"github.com/benvon/healthz-api/internal/request"
	"github.com/benvon/healthz-api/internal/validation"
	"github.com/google/uuid"
)

// RequestIDHeader is read from incoming requests so IDs from an upstream proxy are kept
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID attaches a request ID to the request context, reusing a well-formed
// X-Request-ID header or generating a UUID. The ID is not echoed, so preflight responses
// carry CORS headers only.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if len(id) > maxRequestIDLength || !validation.IsHTTPToken(id) {
			id = uuid.NewString()
		}
		next.ServeHTTP(w, r.WithContext(request.WithRequestID(r.Context(), id)))
	})
}
