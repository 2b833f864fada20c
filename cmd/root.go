package cmd

import (
	"fmt"
	"os"

	"adherence-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "adherence-sync",
	Short: "Flight Adherence Sync Service",
	Long: `Adherence Sync loads vendor flight-adherence batches into the reporting database.
Batches arrive over HTTP, from object storage or from a NATS queue, and are
reconciled into airlines, airports and flight records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives ISO8601 timestamps for CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
