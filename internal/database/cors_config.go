package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benvon/healthz-api/internal/cors"
	"github.com/benvon/healthz-api/internal/models"
	"github.com/benvon/healthz-api/internal/validation"
)

const defaultCorsConfigKey = "default"

// CorsConfigRepository handles CORS configuration in the database.
type CorsConfigRepository struct {
	db *DB
}

// NewCorsConfigRepository creates a new CORS config repository.
func NewCorsConfigRepository(db *DB) *CorsConfigRepository {
	return &CorsConfigRepository{db: db}
}

// Get retrieves the default CORS config. Returns nil, nil when no row exists.
func (r *CorsConfigRepository) Get(ctx context.Context) (*models.CorsConfig, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT config_key, origin_mode, origins, methods, allowed_headers,
		       allow_credentials, max_age, created_at, updated_at
		FROM cors_config WHERE config_key = $1
	`, defaultCorsConfigKey)
	c := &models.CorsConfig{}
	err := row.Scan(
		&c.ConfigKey,
		&c.OriginMode,
		&c.Origins,
		&c.Methods,
		&c.AllowedHeaders,
		&c.AllowCredentials,
		&c.MaxAge,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cors config: %w", err)
	}
	return c, nil
}

// Set validates and upserts the default CORS config.
func (r *CorsConfigRepository) Set(ctx context.Context, c *models.CorsConfig) error {
	policyCfg, err := PolicyConfig(c)
	if err != nil {
		return err
	}
	if err := policyCfg.Validate(); err != nil {
		return fmt.Errorf("set cors config: %w", err)
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cors_config (config_key, origin_mode, origins, methods, allowed_headers,
		                         allow_credentials, max_age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (config_key) DO UPDATE SET
			origin_mode = EXCLUDED.origin_mode,
			origins = EXCLUDED.origins,
			methods = EXCLUDED.methods,
			allowed_headers = EXCLUDED.allowed_headers,
			allow_credentials = EXCLUDED.allow_credentials,
			max_age = EXCLUDED.max_age,
			updated_at = EXCLUDED.updated_at
	`, defaultCorsConfigKey,
		policyCfg.Origin.Mode.String(),
		strings.Join(policyCfg.Origin.Values, ","),
		strings.Join(policyCfg.Methods, ", "),
		strings.Join(policyCfg.AllowedHeaders, ", "),
		policyCfg.Credentials,
		policyCfg.MaxAge,
		now, now)
	if err != nil {
		return fmt.Errorf("set cors config: %w", err)
	}
	return nil
}

// PolicyConfig converts a stored row into a policy config. The result is not validated.
func PolicyConfig(c *models.CorsConfig) (cors.Config, error) {
	mode, err := cors.ParseOriginMode(c.OriginMode)
	if err != nil {
		return cors.Config{}, fmt.Errorf("cors config: %w", err)
	}

	origin := cors.Origin{Mode: mode}
	switch mode {
	case cors.OriginSingle:
		origin.Values = []string{strings.TrimSpace(c.Origins)}
	case cors.OriginList:
		origin.Values = validation.SplitList(c.Origins)
	}

	return cors.Config{
		Origin:         origin,
		Methods:        validation.SplitList(c.Methods),
		AllowedHeaders: validation.SplitList(c.AllowedHeaders),
		Credentials:    c.AllowCredentials,
		MaxAge:         c.MaxAge,
	}, nil
}

// StoredCorsConfig is the inverse of PolicyConfig.
func StoredCorsConfig(cfg cors.Config) *models.CorsConfig {
	return &models.CorsConfig{
		ConfigKey:        defaultCorsConfigKey,
		OriginMode:       cfg.Origin.Mode.String(),
		Origins:          strings.Join(cfg.Origin.Values, ","),
		Methods:          strings.Join(cfg.Methods, ", "),
		AllowedHeaders:   strings.Join(cfg.AllowedHeaders, ", "),
		AllowCredentials: cfg.Credentials,
		MaxAge:           cfg.MaxAge,
	}
}
