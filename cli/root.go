// Package cli holds the chefd command tree.
package cli

import (
	"chef-marketplace-api/config"
	"chef-marketplace-api/logger"

	"github.com/spf13/cobra"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chefd",
		Short:         "Chef marketplace API server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(promoteAdminCmd())
	return root
}

// Execute runs the command named on the command line; with no subcommand it serves.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Fatal("chefd failed", "error", err)
	}
}

// bootstrap loads configuration, sets up logging and opens the database.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Env)
	if err := config.InitDB(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
