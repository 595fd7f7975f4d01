package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/benvon/healthz-api/internal/models"
	"github.com/benvon/healthz-api/internal/request"
	"go.uber.org/zap"
)

const (
	panicErrorType    = "Internal Server Error"
	panicErrorMessage = "An unexpected error occurred"
)

// ErrorHandler recovers panics from the rest of the chain and answers with a generic
// 500 envelope. The panic value only reaches the log.
func ErrorHandler(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// net/http aborts the connection quietly for this one
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic_recovered",
					zap.Any("error", rec),
					zap.String("request_id", request.RequestID(r)),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				writePanicResponse(w, r, log)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writePanicResponse(w http.ResponseWriter, r *http.Request, log *zap.Logger) {
	body := models.NewErrorEnvelope(panicErrorType, panicErrorMessage)
	body.Path = r.URL.Path

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed_to_encode_error_response",
			zap.Error(err),
			zap.String("request_id", request.RequestID(r)),
			zap.String("path", r.URL.Path),
		)
	}
}
