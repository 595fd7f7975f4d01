package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/benvon/healthz-api/internal/config"
	"github.com/benvon/healthz-api/internal/cors"
	"github.com/benvon/healthz-api/internal/database"
	"github.com/benvon/healthz-api/internal/models"
	"github.com/benvon/healthz-api/internal/validation"
	"github.com/spf13/cobra"
)

// NewCorsCmd creates the cors configuration command with list, set and evaluate subcommands.
func NewCorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cors",
		Short: "Manage CORS configuration",
		Long:  "List, update or evaluate the CORS policy stored in the database.",
	}
	cmd.AddCommand(newCorsListCmd())
	cmd.AddCommand(newCorsSetCmd())
	cmd.AddCommand(newCorsEvaluateCmd())
	return cmd
}

func newCorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List current CORS configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(cmd.ErrOrStderr(), db)

			c, err := database.NewCorsConfigRepository(db).Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("get cors config: %w", err)
			}
			out := cmd.OutOrStdout()
			if c == nil {
				_, _ = fmt.Fprintln(out, "No CORS configuration in database. Use 'cors set' to add one.")
				return nil
			}
			printStoredCors(out, c)
			return nil
		},
	}
}

func printStoredCors(out io.Writer, c *models.CorsConfig) {
	_, _ = fmt.Fprintln(out, "CORS configuration:")
	_, _ = fmt.Fprintf(out, "  Origin mode: %s\n", c.OriginMode)
	if c.Origins != "" {
		_, _ = fmt.Fprintf(out, "  Origins: %s\n", c.Origins)
	}
	_, _ = fmt.Fprintf(out, "  Methods: %s\n", c.Methods)
	_, _ = fmt.Fprintf(out, "  Allowed headers: %s\n", c.AllowedHeaders)
	_, _ = fmt.Fprintf(out, "  Allow credentials: %v\n", c.AllowCredentials)
	_, _ = fmt.Fprintf(out, "  Max-Age: %d\n", c.MaxAge)
	if !c.UpdatedAt.IsZero() {
		_, _ = fmt.Fprintf(out, "  Updated: %s\n", models.FormatTimestamp(c.UpdatedAt))
	}
}

// corsFlags are the policy fields accepted by 'cors set'
type corsFlags struct {
	origin         string
	methods        string
	allowedHeaders string
	allowCreds     bool
	maxAge         int
}

func (f corsFlags) config() (cors.Config, error) {
	cfg := cors.Config{
		Origin:         cors.ParseOrigin(f.origin),
		Methods:        validation.SplitList(f.methods),
		AllowedHeaders: validation.SplitList(f.allowedHeaders),
		Credentials:    f.allowCreds,
		MaxAge:         f.maxAge,
	}
	if err := cfg.Validate(); err != nil {
		return cors.Config{}, err
	}
	return cfg, nil
}

func newCorsSetCmd() *cobra.Command {
	var f corsFlags
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set CORS configuration",
		Long: `Replace the stored CORS policy. --origin accepts "*" (any origin), "false" (no origin header),
a single origin emitted as-is, or a comma-separated allow-list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policyCfg, err := f.config()
			if err != nil {
				return fmt.Errorf("invalid cors configuration: %w", err)
			}

			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(cmd.ErrOrStderr(), db)

			if err := database.NewCorsConfigRepository(db).Set(cmd.Context(), database.StoredCorsConfig(policyCfg)); err != nil {
				return fmt.Errorf("set cors config: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "CORS configuration updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&f.origin, "origin", "", `"*", "false", a single origin, or a comma-separated list (required)`)
	cmd.Flags().StringVar(&f.methods, "methods", "GET, POST, PUT, DELETE, OPTIONS", "Comma-separated allowed methods")
	cmd.Flags().StringVar(&f.allowedHeaders, "allowed-headers", "Content-Type, Authorization, X-Requested-With", "Comma-separated allowed request headers")
	cmd.Flags().BoolVar(&f.allowCreds, "allow-credentials", false, "Send Access-Control-Allow-Credentials: true")
	cmd.Flags().IntVar(&f.maxAge, "max-age", cors.DefaultMaxAge, "Access-Control-Max-Age in seconds (0 omits the header)")
	_ = cmd.MarkFlagRequired("origin")
	return cmd
}

func newCorsEvaluateCmd() *cobra.Command {
	var origin string
	var envOnly bool
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Show the CORS headers sent for an origin",
		Long:  "Evaluate the stored policy (or the CORS_* environment when none is stored) for --origin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			policyCfg, source, err := resolveCorsConfig(cmd, cfg, envOnly)
			if err != nil {
				return err
			}
			policy, err := cors.NewPolicy(policyCfg)
			if err != nil {
				return fmt.Errorf("invalid %s cors configuration: %w", source, err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Policy source: %s\n", source)
			writeHeaderSet(out, policy.ComputeHeaders(origin))
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "", "Request Origin to evaluate (empty means no Origin header)")
	cmd.Flags().BoolVar(&envOnly, "env", false, "Ignore the database and evaluate the CORS_* environment")
	return cmd
}

func resolveCorsConfig(cmd *cobra.Command, cfg *config.Config, envOnly bool) (cors.Config, string, error) {
	if envOnly || cfg.DatabaseURL == "" {
		return cfg.CORS(), "environment", nil
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return cors.Config{}, "", fmt.Errorf("connect to database: %w", err)
	}
	defer closeDatabase(cmd.ErrOrStderr(), db)

	stored, err := database.NewCorsConfigRepository(db).Get(cmd.Context())
	if err != nil {
		return cors.Config{}, "", fmt.Errorf("get cors config: %w", err)
	}
	if stored == nil {
		return cfg.CORS(), "environment", nil
	}
	policyCfg, err := database.PolicyConfig(stored)
	if err != nil {
		return cors.Config{}, "", err
	}
	return policyCfg, "database", nil
}

func writeHeaderSet(out io.Writer, headers cors.HeaderSet) {
	if len(headers) == 0 {
		_, _ = fmt.Fprintln(out, "(no CORS headers)")
		return
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "%s: %s\n", name, headers[name])
	}
}
