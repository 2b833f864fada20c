package flights

import (
	"context"
	"fmt"

	"adherence-sync/core/storage"
	"adherence-sync/feature/flights/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service exposes flight loads to the HTTP, CLI and queue entry points.
type Service struct {
	loader *Loader
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new flights service. client may be nil when object storage is
// not configured.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		loader: NewLoader(db, logger),
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// LoadPayload decodes a raw vendor payload and loads it under source.
func (s *Service) LoadPayload(ctx context.Context, source string, payload []byte) (*Summary, error) {
	records, err := DecodeRecords(payload)
	if err != nil {
		return nil, err
	}
	return s.loader.Load(ctx, records, source)
}

// LoadObject loads a payload stored in the bucket. An empty source is derived from the key.
func (s *Service) LoadObject(ctx context.Context, key, source string) (*Summary, error) {
	if s.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	if source == "" {
		source = SourceFromKey(key)
	}

	data, err := storage.ReadObject(ctx, s.client, s.bucket, key)
	if err != nil {
		return nil, err
	}
	return s.LoadPayload(ctx, source, data)
}

// LoadPrefix loads every JSON payload under prefix, oldest key first, stopping at the
// first failure. Loaded objects are moved under archive when it is not empty.
func (s *Service) LoadPrefix(ctx context.Context, prefix, archive string) ([]*Summary, error) {
	if s.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	keys, err := storage.ListKeys(ctx, s.client, s.bucket, prefix, ".json")
	if err != nil {
		return nil, err
	}

	var summaries []*Summary
	for _, key := range keys {
		summary, err := s.LoadObject(ctx, key, "")
		if err != nil {
			return summaries, fmt.Errorf("object %s: %w", key, err)
		}
		summaries = append(summaries, summary)

		if archive != "" {
			dest := archive + "/" + key
			if err := storage.MoveObject(ctx, s.client, s.bucket, key, dest); err != nil {
				return summaries, err
			}
			s.logger.Info("Archived payload", zap.String("key", key), zap.String("archive", dest))
		}
	}
	return summaries, nil
}

// HandleMessage loads one queue message holding a Batch.
func (s *Service) HandleMessage(ctx context.Context, data []byte) (any, error) {
	batch, err := DecodeBatch(data)
	if err != nil {
		return nil, err
	}
	return s.loader.Load(ctx, batch.Records, batch.Source)
}

// Fields returns the declared fields of a flight record.
func (s *Service) Fields() []models.FieldInfo {
	return models.FlightRecordFields
}
