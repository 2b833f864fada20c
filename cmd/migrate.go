package cmd

import (
	"fmt"

	"adherence-sync/feature/flights/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the reporting tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the reporting tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := connect(cfg, logg)
		if err != nil {
			return err
		}

		if err := db.WithContext(cmd.Context()).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		logg.Info("Reporting tables migrated", zap.Int("tables", len(models.All())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
