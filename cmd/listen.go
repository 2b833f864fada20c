package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"adherence-sync/core/messaging"
	"adherence-sync/feature/flights"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// listenCmd consumes load requests from the NATS queue.
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Consume load requests from the queue",
	Long: `Subscribes to the configured NATS subject and loads every batch received.
Messages are handled one at a time. A message carrying a reply subject gets the
load summary or the error back.`,
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

		conn, err := messaging.Connect(cfg.Nats)
		if err != nil {
			return err
		}
		defer conn.Drain()

		svc := flights.NewService(db, nil, cfg.Storage.Bucket, logg)
		worker := messaging.NewWorker(conn, cfg.Nats, svc.HandleMessage, logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := worker.Run(ctx); err != nil {
			return fmt.Errorf("worker stopped: %w", err)
		}
		logg.Info("Worker stopped", zap.String("subject", cfg.Nats.Subject))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listenCmd)
}
