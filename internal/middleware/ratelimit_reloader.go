package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/benvon/healthz-api/internal/database"
	"github.com/benvon/healthz-api/internal/models"
	"github.com/benvon/healthz-api/internal/request"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"go.uber.org/zap"
)

// RatelimitConfigStore loads and saves the stored rate. Get returns nil, nil when none is stored.
type RatelimitConfigStore interface {
	Get(ctx context.Context) (*models.RatelimitConfig, error)
	Set(ctx context.Context, c *models.RatelimitConfig) error
}

var _ RatelimitConfigStore = (*database.RatelimitConfigRepository)(nil)

// RateLimitReloader wraps ulule/limiter and periodically reloads the rate from the database.
// With a nil repo the default rate is used for the life of the process.
type RateLimitReloader struct {
	store       limiter.Store
	repo        RatelimitConfigStore
	defaultRate string
	log         *zap.Logger
	interval    time.Duration
	mu          sync.RWMutex
	rate        limiter.Rate
	current     *stdlibmw.Middleware
}

// NewRateLimitReloader creates a rate limit middleware over store. The default rate must parse.
func NewRateLimitReloader(store limiter.Store, repo RatelimitConfigStore, defaultRate string, log *zap.Logger, reloadInterval time.Duration) (*RateLimitReloader, error) {
	if defaultRate == "" {
		defaultRate = defaultRatelimitRate
	}
	rate, err := limiter.NewRateFromFormatted(defaultRate)
	if err != nil {
		return nil, err
	}
	r := &RateLimitReloader{
		store:       store,
		repo:        repo,
		defaultRate: defaultRate,
		log:         log,
		interval:    reloadInterval,
	}
	r.swap(rate)
	return r, nil
}

// Middleware limits requests per client IP using the current rate.
func (r *RateLimitReloader) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			r.mu.RLock()
			mw := r.current
			r.mu.RUnlock()
			mw.Handler(next).ServeHTTP(w, req)
		})
	}
}

// Rate returns the rate currently in force.
func (r *RateLimitReloader) Rate() limiter.Rate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rate
}

// Start runs the reload loop until ctx is cancelled.
func (r *RateLimitReloader) Start(ctx context.Context) {
	if r.interval <= 0 || r.repo == nil {
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

// Reload reads the stored rate, saving the default when none exists.
func (r *RateLimitReloader) Reload(ctx context.Context) {
	if r.repo == nil {
		return
	}
	cfg, err := r.repo.Get(ctx)
	rateStr := r.defaultRate
	if err != nil {
		r.log.Warn("failed_to_load_ratelimit_config_from_db_using_default",
			zap.Error(err),
			zap.String("default_rate", r.defaultRate),
		)
	} else if cfg != nil && cfg.Rate != "" {
		rateStr = cfg.Rate
	} else if err = r.repo.Set(ctx, &models.RatelimitConfig{Rate: r.defaultRate}); err != nil {
		r.log.Error("failed_to_save_default_ratelimit_config",
			zap.Error(err),
			zap.String("default_rate", r.defaultRate),
		)
	}

	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		r.log.Error("failed_to_parse_rate_limit_using_default",
			zap.Error(err),
			zap.String("rate_str", rateStr),
			zap.String("default_rate", r.defaultRate),
		)
		// Default rate was validated in the constructor
		rate, _ = limiter.NewRateFromFormatted(r.defaultRate)
	}

	r.swap(rate)
}

func (r *RateLimitReloader) swap(rate limiter.Rate) {
	instance := limiter.New(r.store, rate)
	keyGetter := func(req *http.Request) string {
		return request.ClientIP(req)
	}
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(keyGetter))

	r.mu.Lock()
	r.rate = rate
	r.current = mw
	r.mu.Unlock()
}
