// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from the
// application's core logic: the entry store is where the background analysis
// pipeline records its outcome, so both the API layer and the queue worker
// depend on it without knowing about PostgreSQL.
package store
