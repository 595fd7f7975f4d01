package commands

import (
	"fmt"

	"github.com/benvon/healthz-api/internal/database"
	"github.com/benvon/healthz-api/internal/models"
	"github.com/spf13/cobra"
)

// NewRatelimitCmd creates the ratelimit configuration command with list and set subcommands.
func NewRatelimitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Manage rate limit configuration",
		Long:  "List or update the /api/v1 rate limit (e.g. 5-S, 100-M). Stored in database.",
	}
	cmd.AddCommand(newRatelimitListCmd())
	cmd.AddCommand(newRatelimitSetCmd())
	return cmd
}

func newRatelimitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List current rate limit configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(cmd.ErrOrStderr(), db)

			c, err := database.NewRatelimitConfigRepository(db).Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("get ratelimit config: %w", err)
			}
			out := cmd.OutOrStdout()
			if c == nil {
				_, _ = fmt.Fprintf(out, "No rate limit configuration in database; the server uses RATE_LIMIT=%s.\n", cfg.RateLimit)
				return nil
			}
			_, _ = fmt.Fprintln(out, "Rate limit configuration:")
			_, _ = fmt.Fprintf(out, "  Rate: %s\n", c.Rate)
			return nil
		},
	}
}

func newRatelimitSetCmd() *cobra.Command {
	var rate string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set rate limit configuration",
		Long:  "Update rate limit (e.g. 5-S, 100-M, 1000-H). Stored in database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := database.NormalizeRate(rate)
			if err != nil {
				return err
			}

			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(cmd.ErrOrStderr(), db)

			if err := database.NewRatelimitConfigRepository(db).Set(cmd.Context(), &models.RatelimitConfig{Rate: normalized}); err != nil {
				return fmt.Errorf("set ratelimit config: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Rate limit configuration updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", "Rate (e.g. 5-S, 100-M, 1000-H) (required)")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}
