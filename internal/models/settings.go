package models

import "time"

// CorsConfig is the stored CORS policy. List fields are comma-separated.
type CorsConfig struct {
	ConfigKey        string    `json:"config_key"`
	OriginMode       string    `json:"origin_mode"` // wildcard, single, list or disabled
	Origins          string    `json:"origins"`
	Methods          string    `json:"methods"`
	AllowedHeaders   string    `json:"allowed_headers"`
	AllowCredentials bool      `json:"allow_credentials"`
	MaxAge           int       `json:"max_age"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RatelimitConfig is the stored rate for the rate-limited API routes, in ulule/limiter
// format (e.g. "5-S", "100-M").
type RatelimitConfig struct {
	ConfigKey string    `json:"config_key"`
	Rate      string    `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
