package reconcile

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// batchSize bounds the number of rows per INSERT statement.
const batchSize = 500

type lookupKeyRow struct {
	LookupKey string
}

// MissingKeys returns the distinct staging values that have no row in the lookup table,
// sorted ascending. It is an anti-join evaluated by the store, never row by row.
func MissingKeys(ctx context.Context, tx *gorm.DB, spec LookupSpec) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT s.%[3]s AS lookup_key FROM %[4]s s WHERE s.%[3]s IS NOT NULL AND NOT EXISTS (SELECT 1 FROM %[1]s l WHERE l.%[2]s = s.%[3]s) ORDER BY lookup_key",
		spec.Table, spec.KeyColumn, spec.StagingColumn, spec.StagingTable,
	)

	var found []lookupKeyRow
	if err := tx.WithContext(ctx).Raw(query).Scan(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to compute missing keys for %s: %w", spec, err)
	}

	keys := make([]string, 0, len(found))
	for _, row := range found {
		keys = append(keys, row.LookupKey)
	}
	return keys, nil
}

// InsertMissing computes the missing keys for spec and inserts one row per key, built by
// newRow. It returns the keys that were inserted. A duplicate key is reported as
// *UniquenessViolation and is never retried.
//
// Passes for lookups sharing a table must run one after another inside the same
// transaction: each pass sees the rows inserted by the previous one.
func InsertMissing[T any](ctx context.Context, tx *gorm.DB, spec LookupSpec, newRow func(key string) T) ([]string, error) {
	keys, err := MissingKeys(ctx, tx, spec)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	rows := make([]T, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, newRow(key))
	}

	if err := tx.WithContext(ctx).Table(spec.Table).CreateInBatches(&rows, batchSize).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &UniquenessViolation{Table: spec.Table, Codes: keys, Err: err}
		}
		return nil, fmt.Errorf("failed to insert missing keys for %s: %w", spec, err)
	}
	return keys, nil
}

// InsertSelect runs a set-based INSERT ... SELECT and returns the number of inserted rows.
// A duplicate key is reported as *UniquenessViolation on table.
func InsertSelect(ctx context.Context, tx *gorm.DB, table, statement string, args ...any) (int64, error) {
	result := tx.WithContext(ctx).Exec(statement, args...)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return 0, &UniquenessViolation{Table: table, Err: result.Error}
		}
		return 0, fmt.Errorf("failed to insert into %s: %w", table, result.Error)
	}
	return result.RowsAffected, nil
}
