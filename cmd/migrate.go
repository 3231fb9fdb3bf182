package cmd

import (
	"fmt"

	"dummy-ticket/pkg/database"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap("migrate")
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.InitDB(cmd.Context(), config.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			logger.Info("Schema applied")
			return nil
		},
	}
}
