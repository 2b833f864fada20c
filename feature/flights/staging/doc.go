// Package staging manages the transient table holding exactly one vendor load.
//
// Truncate must run at the start of every load, inside the load's transaction, so that
// rows from an earlier (possibly failed) load never reach reconciliation.
package staging
