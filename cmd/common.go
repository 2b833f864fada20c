package cmd

import (
	"fmt"

	"adherence-sync/core/config"
	"adherence-sync/core/database"
	"adherence-sync/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads the configuration and builds the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// connect opens the reporting database, which every load requires.
func connect(cfg *config.Config, logg *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	logg.Info("Connected to reporting database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Name),
	)
	return db, nil
}
