package commands

import (
	"fmt"
	"io"

	"github.com/benvon/healthz-api/internal/config"
	"github.com/benvon/healthz-api/internal/database"
)

// openDatabase loads configuration and connects to the configured Postgres database
func openDatabase() (*database.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.RequireDatabase(); err != nil {
		return nil, nil, err
	}
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, cfg, nil
}

func closeDatabase(w io.Writer, db *database.DB) {
	if err := db.Close(); err != nil {
		_, _ = fmt.Fprintf(w, "Warning: failed to close database: %v\n", err)
	}
}
