package integrity

import (
	"context"
	"fmt"

	"adherence-sync/core/storage"
	"adherence-sync/feature/flights/models"
	"adherence-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	inbox   string
	archive string
	logger  *zap.Logger
	db      *gorm.DB
}

// NewService creates a new integrity service. client and db may each be nil; checks
// needing them then report an error.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client:  client,
		bucket:  cfg.Bucket,
		inbox:   cfg.Inbox,
		archive: cfg.Archive,
		logger:  logger,
		db:      db,
	}
}

// Folders returns the folders the payload bucket must contain.
func (s *Service) Folders() []string {
	return []string{s.inbox, s.archive}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, s.Folders())
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return fmt.Errorf("object storage is not configured")
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckPending returns the payloads waiting in the inbox.
func (s *Service) CheckPending(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	return checks.CheckPending(ctx, s.client, s.bucket, s.inbox)
}

// CheckSchema compares the reporting tables to the flight models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All()...)
}
