package cli

import (
	"fmt"

	"chef-marketplace-api/config"
	"chef-marketplace-api/services"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", cfg.DBPath)
			return nil
		},
	}
}

func promoteAdminCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "promote-admin",
		Short: "Grant the admin role to an account",
		Long: `Grant the admin role to an account, creating it if needed.

Role requests can only be approved by an admin, so the first one is created here:
  chefd promote-admin --email owner@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootstrap(); err != nil {
				return err
			}
			created, err := services.NewUserService(config.DB).PromoteAdmin(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("promote %s: %w", email, err)
			}
			verb := "promoted"
			if created {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s admin %s\n", verb, email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the account to promote")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
