package middleware

import (
	"net/http"

	"github.com/benvon/healthz-api/internal/cors"
	logpkg "github.com/benvon/healthz-api/internal/logger"
	"github.com/benvon/healthz-api/internal/request"
	"go.uber.org/zap"
)

// Audit logs security-related events: rate limit violations and cross-origin requests
// that were answered without an Access-Control-Allow-Origin header.
func Audit(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			ip := logpkg.SanitizeString(request.ClientIP(r), logpkg.MaxGeneralStringLength)

			if wrapped.statusCode == http.StatusTooManyRequests {
				logger.Warn("rate_limit_violation",
					zap.String("request_id", request.RequestID(r)),
					zap.String("method", r.Method),
					zap.String("path", logpkg.SanitizePath(r.URL.Path)),
					zap.String("ip", ip),
				)
			}

			// The browser blocks these client-side; record them so misconfigured origins are visible
			origin := cors.RequestOrigin(r)
			if origin != "" && w.Header().Get(cors.HeaderAllowOrigin) == "" {
				logger.Debug("cors_origin_not_allowed",
					zap.String("request_id", request.RequestID(r)),
					zap.String("method", r.Method),
					zap.String("path", logpkg.SanitizePath(r.URL.Path)),
					zap.String("origin", logpkg.SanitizeOrigin(origin)),
					zap.String("ip", ip),
				)
			}
		})
	}
}
