package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/healthz-api/api/openapi"
	"github.com/benvon/healthz-api/internal/config"
	"github.com/benvon/healthz-api/internal/database"
	"github.com/benvon/healthz-api/internal/health"
	"github.com/benvon/healthz-api/internal/logger"
	"github.com/benvon/healthz-api/internal/middleware"
	"github.com/benvon/healthz-api/internal/migration"
	"github.com/benvon/healthz-api/internal/server"
	"github.com/benvon/healthz-api/internal/telemetry"
	"github.com/benvon/healthz-api/internal/version"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	serviceName     = "healthz-api"
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	devFlag := flag.Bool("dev", false, "Human-readable console logs")
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before reading the environment")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.New(debugMode, *devFlag)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync(zapLogger) // Ignore sync errors on stderr/stdout
	}()

	appVersion := cfg.AppVersion
	if appVersion == "" {
		appVersion = version.Resolve()
	}

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("version", appVersion),
		zap.String("cors_origin", logger.SanitizeOrigin(cfg.CORSOrigin)),
		zap.Bool("database_enabled", cfg.DatabaseURL != ""),
		zap.Bool("redis_enabled", cfg.RedisURL != ""),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	tracingService := ""
	if cfg.OTELEnabled {
		tp, err := telemetry.InitTracer(context.Background(), telemetry.Config{
			ServiceName:    serviceName,
			ServiceVersion: appVersion,
			Endpoint:       cfg.OTELEndpoint,
			Insecure:       cfg.OTELInsecure,
		})
		if err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			tracingService = serviceName
			zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			}()
		}
	}

	// Postgres is optional: without it the CORS policy and rate come from the environment only
	var db *database.DB
	if cfg.DatabaseURL != "" {
		db, err = database.New(cfg.DatabaseURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
			}
		}()
		zapLogger.Info("connected_to_database")

		migrateCtx, migrateCancel := context.WithTimeout(context.Background(), time.Minute)
		err = migration.Up(migrateCtx, db.DB)
		migrateCancel()
		if err != nil {
			zapLogger.Fatal("failed_to_apply_migrations", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = middleware.NewRedisClient(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()
		zapLogger.Info("connected_to_redis")
	}

	reloadCtx, reloadCancel := context.WithCancel(context.Background())
	defer reloadCancel()

	var corsProvider middleware.CORSProvider
	var ratelimitRepo middleware.RatelimitConfigStore
	if db != nil {
		reloader, err := middleware.NewCORSReloader(database.NewCorsConfigRepository(db), cfg.CORS(), zapLogger, cfg.CORSReloadInterval)
		if err != nil {
			zapLogger.Fatal("failed_to_create_cors_reloader", zap.Error(err))
		}
		reloader.Reload(reloadCtx)
		go reloader.Start(reloadCtx)
		corsProvider = reloader
		ratelimitRepo = database.NewRatelimitConfigRepository(db)
	} else {
		static, err := middleware.NewStaticCORS(cfg.CORS())
		if err != nil {
			zapLogger.Fatal("invalid_cors_configuration", zap.Error(err))
		}
		corsProvider = static
	}

	limiterStore, err := middleware.NewLimiterStore(redisClient)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limit_store", zap.Error(err))
	}
	rateLimiter, err := middleware.NewRateLimitReloader(limiterStore, ratelimitRepo, cfg.RateLimit, zapLogger, cfg.CORSReloadInterval)
	if err != nil {
		zapLogger.Fatal("invalid_rate_limit", zap.Error(err), zap.String("rate", cfg.RateLimit))
	}
	rateLimiter.Reload(reloadCtx)
	go rateLimiter.Start(reloadCtx)

	// Interfaces stay nil for absent dependencies so the checker skips them
	var dbPinger, redisPinger health.Pinger
	if db != nil {
		dbPinger = db
	}
	if redisClient != nil {
		redisPinger = health.RedisPinger{Client: redisClient}
	}

	router := server.NewRouter(server.Deps{
		Logger:         zapLogger,
		Health:         health.NewProvider(health.WithVersionSource(health.StaticVersion(appVersion))),
		Readiness:      health.NewReadinessChecker(dbPinger, redisPinger),
		CORS:           corsProvider,
		RateLimit:      rateLimiter.Middleware(),
		OpenAPI:        openapi.Document,
		Version:        appVersion,
		EnableHSTS:     cfg.EnableHSTS,
		RequestTimeout: requestTimeout,
		TracingService: tracingService,
	})

	srv := server.NewHTTPServer(cfg.ServerPort, router)

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	reloadCancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
