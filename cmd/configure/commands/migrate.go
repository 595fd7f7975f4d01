package commands

import (
	"fmt"

	"github.com/benvon/healthz-api/internal/migration"
	"github.com/benvon/healthz-api/internal/models"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(cmd.ErrOrStderr(), db)

			if err := migration.Up(cmd.Context(), db.DB); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(cmd.ErrOrStderr(), db)

			statuses, err := migration.Status(cmd.Context(), db.DB)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range statuses {
				applied := "-"
				if !s.AppliedAt.IsZero() {
					applied = models.FormatTimestamp(s.AppliedAt)
				}
				_, _ = fmt.Fprintf(out, "%-8s %-24s %s\n", s.State, applied, s.Source.Path)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List migrations embedded in this binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := migration.Sources()
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})
	return cmd
}
