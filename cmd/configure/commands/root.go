package commands

import (
	"github.com/benvon/healthz-api/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the healthz-configure command tree
func NewRootCmd() *cobra.Command {
	var envFile string
	rootCmd := &cobra.Command{
		Use:           "healthz-configure",
		Short:         "Configuration tool for the healthz API",
		Long:          "CLI tool for managing the stored CORS policy, rate limit and database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	rootCmd.AddCommand(NewCorsCmd())
	rootCmd.AddCommand(NewRatelimitCmd())
	rootCmd.AddCommand(NewMigrateCmd())
	return rootCmd
}
