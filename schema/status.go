package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalChanges  int              `json:"total_changes"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the docdiff_runs table.
type RunRecord struct {
	RunID           int64
	RunUUID         string
	StartTime       time.Time
	EndTime         *time.Time
	RunDurationMs   *int32
	OldVersion      string
	NewVersion      string
	AddedClasses    int32
	RemovedClasses  int32
	ModifiedClasses int32
	WarningCount    int32
	ConfigParams    *string
}

// ClassChangeRecord represents a row from the docdiff_class_changes table.
// Added and removed classes are recorded under ClassesCategory.
type ClassChangeRecord struct {
	RunID     int64
	ClassName string
	Category  string
	Added     int32
	Modified  int32
	Removed   int32
}
