// Package server assembles the HTTP router and server.
package server

import (
	"net/http"
	"time"

	"github.com/benvon/healthz-api/internal/handlers"
	"github.com/benvon/healthz-api/internal/health"
	"github.com/benvon/healthz-api/internal/middleware"
	"github.com/benvon/healthz-api/internal/telemetry"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Deps are the collaborators the router serves
type Deps struct {
	Logger    *zap.Logger
	Health    health.StatusProvider
	Readiness handlers.ReadinessChecker
	CORS      middleware.CORSProvider
	// RateLimit guards /api/v1; nil leaves it unlimited
	RateLimit func(http.Handler) http.Handler
	OpenAPI   []byte
	Version   string

	EnableHSTS     bool
	RequestTimeout time.Duration
	// TracingService enables otelmux spans under this service name when non-empty
	TracingService string
}

// NewRouter builds the route table. gorilla/mux runs middleware in registration order,
// first registered outermost.
func NewRouter(d Deps) *mux.Router {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := mux.NewRouter()

	if d.TracingService != "" {
		r.Use(telemetry.RouterMiddleware(d.TracingService))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.ErrorHandler(log))
	r.Use(middleware.Audit(log))
	// Preflight requests are answered here and go no further
	r.Use(d.CORS.Middleware())
	r.Use(middleware.SecurityHeaders(d.EnableHSTS))
	r.Use(middleware.Timeout(d.RequestTimeout))

	healthHandler := handlers.NewHealthHandler(d.Health, log)
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/version", handlers.NewVersionHandler(d.Version).Version).Methods(http.MethodGet)
	if d.Readiness != nil {
		r.HandleFunc("/readyz", handlers.NewReadinessHandler(d.Readiness, log).Ready).Methods(http.MethodGet)
	}

	handlers.NewOpenAPIHandler(d.OpenAPI).RegisterRoutes(r)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	if d.RateLimit != nil {
		apiRouter.Use(d.RateLimit)
	}
	apiRouter.HandleFunc("/cors/evaluate", handlers.NewCORSHandler(d.CORS, log).Evaluate).Methods(http.MethodGet)

	// Catch-all so OPTIONS on any path matches a route and reaches the CORS middleware,
	// which writes the preflight response itself. A MatcherFunc rather than Methods keeps
	// mux from answering 405 to other methods on unrouted paths.
	r.MatcherFunc(isPreflight).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return r
}

func isPreflight(req *http.Request, _ *mux.RouteMatch) bool {
	return req.Method == http.MethodOptions
}

// NewHTTPServer wraps handler with the listener timeouts used in production
func NewHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}
}
