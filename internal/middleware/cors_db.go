package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/benvon/healthz-api/internal/cors"
	"github.com/benvon/healthz-api/internal/database"
	"github.com/benvon/healthz-api/internal/models"
	"go.uber.org/zap"
)

// CorsConfigStore loads the stored CORS config. Returns nil, nil when none is stored.
type CorsConfigStore interface {
	Get(ctx context.Context) (*models.CorsConfig, error)
}

var (
	_ CorsConfigStore = (*database.CorsConfigRepository)(nil)
	_ CORSProvider    = (*CORSReloader)(nil)
	_ CORSProvider    = (*StaticCORS)(nil)
)

// CORSReloader applies the CORS policy stored in the database and periodically reloads it.
// The environment-derived fallback is used while no valid stored policy exists.
type CORSReloader struct {
	repo     CorsConfigStore
	fallback *cors.Policy
	log      *zap.Logger
	interval time.Duration
	mu       sync.RWMutex
	policy   *cors.Policy
}

// NewCORSReloader creates a CORS provider backed by repo. Call Reload once before serving.
func NewCORSReloader(repo CorsConfigStore, fallback cors.Config, log *zap.Logger, reloadInterval time.Duration) (*CORSReloader, error) {
	fb, err := cors.NewPolicy(fallback)
	if err != nil {
		return nil, err
	}
	return &CORSReloader{
		repo:     repo,
		fallback: fb,
		log:      log,
		interval: reloadInterval,
		policy:   fb,
	}, nil
}

// Middleware applies whichever policy is current when each request arrives.
func (r *CORSReloader) Middleware() func(http.Handler) http.Handler {
	return cors.MiddlewareFunc(r.Policy)
}

// Start runs the reload loop until ctx is cancelled.
func (r *CORSReloader) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Reload(ctx)
		}
	}
}

// Policy returns the policy currently in force.
func (r *CORSReloader) Policy() *cors.Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy
}

// Reload reads the stored config and swaps in the resulting policy.
func (r *CORSReloader) Reload(ctx context.Context) {
	policy := r.resolve(ctx)

	r.mu.Lock()
	r.policy = policy
	r.mu.Unlock()
}

func (r *CORSReloader) resolve(ctx context.Context) *cors.Policy {
	stored, err := r.repo.Get(ctx)
	if err != nil {
		r.log.Warn("failed_to_load_cors_config_from_db_using_fallback", zap.Error(err))
		return r.fallback
	}
	if stored == nil {
		r.log.Debug("no_cors_config_in_db_using_fallback")
		return r.fallback
	}

	cfg, err := database.PolicyConfig(stored)
	if err != nil {
		r.log.Error("invalid_cors_config_in_db_using_fallback", zap.Error(err))
		return r.fallback
	}
	policy, err := cors.NewPolicy(cfg)
	if err != nil {
		r.log.Error("invalid_cors_config_in_db_using_fallback",
			zap.Error(err),
			zap.String("origin_mode", stored.OriginMode),
		)
		return r.fallback
	}

	r.log.Debug("cors_config_loaded",
		zap.String("origin_mode", stored.OriginMode),
		zap.Bool("allow_credentials", cfg.Credentials),
		zap.Int("max_age", cfg.MaxAge),
	)
	return policy
}
