package middleware

import (
	"net/http"

	"github.com/benvon/healthz-api/internal/cors"
)

// CORSProvider supplies the CORS policy currently in force and the middleware applying it.
type CORSProvider interface {
	Policy() *cors.Policy
	Middleware() func(http.Handler) http.Handler
}

// StaticCORS serves one policy for the life of the process.
type StaticCORS struct {
	policy *cors.Policy
}

// NewStaticCORS validates cfg and returns a fixed-policy provider.
func NewStaticCORS(cfg cors.Config) (*StaticCORS, error) {
	p, err := cors.NewPolicy(cfg)
	if err != nil {
		return nil, err
	}
	return &StaticCORS{policy: p}, nil
}

// Policy returns the fixed policy.
func (s *StaticCORS) Policy() *cors.Policy {
	return s.policy
}

// Middleware answers preflight requests and decorates every other response.
func (s *StaticCORS) Middleware() func(http.Handler) http.Handler {
	return cors.Middleware(s.policy)
}
