// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/branflake2267/docs-sub001/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetReportStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking diff runs and their class changes.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(runUUID string, startTime time.Time, oldVersion, newVersion string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, diff schema.DiffResult, warningCount int) error

	// RecordClassChanges stores the per-class change counts of a run
	RecordClassChanges(runID int64, records []schema.ClassChangeRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllClassChanges retrieves every recorded class change
	GetAllClassChanges() ([]schema.ClassChangeRecord, error)

	// Close closes the underlying connection
	Close() error
}
