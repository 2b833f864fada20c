package reconcile

import "fmt"

// LookupSpec describes a reference table whose rows are derived from one column of a
// staging table. Every distinct non-null value of StagingColumn must end up exactly
// once in Table.KeyColumn.
type LookupSpec struct {
	// Table is the lookup table, e.g. "airlines".
	Table string

	// KeyColumn is the unique natural key column of Table, e.g. "code".
	KeyColumn string

	// StagingTable is the table holding the current load.
	StagingTable string

	// StagingColumn is the staging column referencing the lookup key, e.g. "arrival".
	StagingColumn string
}

// String returns a short description used in logs and errors.
func (s LookupSpec) String() string {
	return fmt.Sprintf("%s.%s <- %s.%s", s.Table, s.KeyColumn, s.StagingTable, s.StagingColumn)
}

// UniquenessViolation reports an insert that collided with an existing natural key,
// typically written by a concurrent load. It is fatal for the current load.
type UniquenessViolation struct {
	// Table is the table the insert targeted.
	Table string

	// Codes are the keys the insert attempted to add. One or more of them already existed.
	Codes []string

	// Err is the underlying driver error.
	Err error
}

func (e *UniquenessViolation) Error() string {
	if len(e.Codes) == 0 {
		return fmt.Sprintf("uniqueness violation on %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("uniqueness violation on %s for %v: %v", e.Table, e.Codes, e.Err)
}

func (e *UniquenessViolation) Unwrap() error {
	return e.Err
}
