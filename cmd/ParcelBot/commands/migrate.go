package commands

import (
	"github.com/spf13/cobra"

	"github.com/natindo/ParcelBot/internal/config"
	"github.com/natindo/ParcelBot/internal/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users, tasks and user_profiles tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(log)

			pool, err := database.ConnectPostgres(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			log.Info("миграция выполнена")
			return nil
		},
	}
}
