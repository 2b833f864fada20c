package staging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// LockName names the mysql user lock guarding the staging table.
const LockName = "adherence_sync.flight_record_staging"

// lockKey is the postgres advisory lock key guarding the staging table.
const lockKey int64 = 0x666c6967687473

// lockWaitSeconds bounds how long a load waits for another process's load on mysql.
const lockWaitSeconds = 60

// ErrLockTimeout is returned when another load held the staging lock for too long.
var ErrLockTimeout = errors.New("timed out waiting for the staging lock")

// Lock serializes loads across processes sharing one database. It must be called
// inside the load transaction, before Truncate. The returned release func must be
// called before the transaction ends.
//
// Postgres takes a transaction scoped advisory lock and releases it on commit or
// rollback. MySQL takes a session user lock, released explicitly. SQLite serializes
// writers itself.
func Lock(ctx context.Context, tx *gorm.DB) (func(), error) {
	db := tx.WithContext(ctx)

	switch db.Dialector.Name() {
	case "postgres":
		if err := db.Exec("SELECT pg_advisory_xact_lock(?)", lockKey).Error; err != nil {
			return nil, fmt.Errorf("failed to lock staging: %w", err)
		}
		return func() {}, nil
	case "mysql":
		var acquired sql.NullInt64
		if err := db.Raw("SELECT GET_LOCK(?, ?)", LockName, lockWaitSeconds).Row().Scan(&acquired); err != nil {
			return nil, fmt.Errorf("failed to lock staging: %w", err)
		}
		if !acquired.Valid || acquired.Int64 != 1 {
			return nil, ErrLockTimeout
		}
		return func() {
			db.Exec("SELECT RELEASE_LOCK(?)", LockName)
		}, nil
	default:
		return func() {}, nil
	}
}
