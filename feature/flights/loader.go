package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"adherence-sync/core/database"
	"adherence-sync/feature/flights/reconcile"
	"adherence-sync/feature/flights/schema"
	"adherence-sync/feature/flights/staging"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrMissingSource is returned when a batch has no source identity.
var ErrMissingSource = errors.New("missing source identity")

// Summary reports what one load added to the reporting tables.
type Summary struct {
	Source        string        `json:"source"`
	Staged        int           `json:"staged"`
	AirlinesAdded []string      `json:"airlines_added"`
	AirportsAdded []string      `json:"airports_added"`
	RecordsAdded  int64         `json:"records_added"`
	Duration      time.Duration `json:"duration_ns"`
}

// Loader validates a vendor batch and reconciles it into the reporting tables.
// Loads are serialized: the staging table holds one load at a time. The mutex covers
// loads of this process, the staging lock loads of other processes on the same database.
type Loader struct {
	db     *gorm.DB
	logger *zap.Logger
	mu     sync.Mutex
}

// NewLoader creates a loader writing through db.
func NewLoader(db *gorm.DB, logger *zap.Logger) *Loader {
	return &Loader{db: db, logger: logger}
}

// Load validates raw, then in one transaction truncates staging, stages the rows tagged
// with source, reconciles airlines and airports, and inserts the new flight records.
// Any failure rolls the whole load back. Validation failures are returned as
// *schema.ValidationError before the store is touched; connectivity failures wrap
// database.ErrUnavailable.
func (l *Loader) Load(ctx context.Context, raw []map[string]any, source string) (*Summary, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrMissingSource
	}

	rows, err := schema.Validate(raw)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	log := l.logger.With(zap.String("source", source), zap.Int("records", len(rows)))
	log.Info("Starting load")
	start := time.Now()

	summary := &Summary{Source: source}
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		release, err := staging.Lock(ctx, tx)
		if err != nil {
			return err
		}
		defer release()

		if err := staging.Truncate(ctx, tx); err != nil {
			return err
		}

		staged, err := staging.BulkInsert(ctx, tx, rows, source)
		if err != nil {
			return err
		}
		summary.Staged = staged

		summary.AirlinesAdded, summary.AirportsAdded, err = reconcile.References(ctx, tx)
		if err != nil {
			return err
		}

		summary.RecordsAdded, err = reconcile.Records(ctx, tx)
		return err
	})
	if err != nil {
		err = database.Unavailable(err)
		log.Error("Load rolled back", zap.Error(err))
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	summary.Duration = time.Since(start)
	log.Info("Load committed",
		zap.Int("staged", summary.Staged),
		zap.Strings("airlines_added", summary.AirlinesAdded),
		zap.Strings("airports_added", summary.AirportsAdded),
		zap.Int64("records_added", summary.RecordsAdded),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}
