package cmd

import (
	"context"

	"adherence-sync/core/database"
	"adherence-sync/core/storage"
	"adherence-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the payload bucket and the reporting schema",
	Long:  `Checks the payload bucket folders, pending payloads and the reporting table schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// pendingCmd represents the integrity pending command
var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List payloads waiting in the inbox",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the reporting tables against the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, pendingCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runPending, runSchema bool) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	var client storage.Client
	if runStructure || runPending {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return err
		}
	}

	var db *gorm.DB
	if runSchema {
		if db, err = database.Connect(cfg.Database); err != nil {
			logg.Warn("Database connection failed", zap.Error(err))
		}
	}

	svc := integrity.NewService(client, cfg.Storage, logg, db)

	if runStructure {
		logg.Info("Checking folder structure...", zap.String("bucket", cfg.Storage.Bucket))
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return err
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				if err := svc.FixStructure(ctx, missing); err != nil {
					return err
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run integrity structure with --fix to create missing folders.")
			}
		}
	}

	if runPending {
		pending, err := svc.CheckPending(ctx)
		if err != nil {
			return err
		}
		logg.Info("Pending payloads", zap.Int("count", len(pending)), zap.Strings("keys", pending))
	}

	if runSchema {
		logg.Info("Checking reporting schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}

		if report.Matched {
			logg.Info("Reporting schema matches the models.", zap.String("dialect", report.Dialect))
			return nil
		}

		logg.Warn("Reporting schema mismatches found", zap.String("dialect", report.Dialect))
		for table, tblReport := range report.Tables {
			if tblReport.Status == "ok" {
				continue
			}
			if len(tblReport.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
			}
			if len(tblReport.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
	}
	return nil
}
