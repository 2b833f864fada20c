// Package reconcile provides set-based reconciliation primitives for loading a staging
// table into normalized reference and fact tables.
//
// All reconciliation is expressed as anti-joins evaluated by the store: the engine never
// checks existence row by row.
//
// # Reference tables
//
// A LookupSpec binds a staging column to a lookup table with a unique key column.
// MissingKeys computes
//
//	SELECT DISTINCT staging.col WHERE NOT EXISTS (lookup row with the same key)
//
// and InsertMissing inserts exactly those keys, one row each, through the caller's model
// type. Several specs may target the same lookup table (for example two roles of the same
// entity); running them one after another inside one transaction keeps every key unique
// since each pass sees the previous pass's inserts.
//
// # Fact tables
//
// InsertSelect executes a feature-provided INSERT ... SELECT statement and reports the
// number of rows inserted.
//
// # Errors
//
// A unique constraint violation (gorm.ErrDuplicatedKey, enabled with TranslateError) is
// returned as *UniquenessViolation. Nothing is retried; callers abort the enclosing
// transaction.
package reconcile
