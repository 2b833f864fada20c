// Package reconcile moves a staged load into the normalized reporting tables.
//
// References inserts the airline and airport codes missing from their lookup tables,
// airports once per role. Records then inserts the staged flight records whose
// natural key is new, resolving codes to surrogate ids. Both run as set-based
// statements inside the caller's transaction.
package reconcile
