package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
)

// Table names for run history.
const (
	runsTable         = "docdiff_runs"
	classChangesTable = "docdiff_class_changes"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{classChangesTable, getCreateClassChangesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for docdiff_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid VARCHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				old_version VARCHAR(255) NOT NULL,
				new_version VARCHAR(255) NOT NULL,
				added_classes INT NOT NULL DEFAULT 0,
				removed_classes INT NOT NULL DEFAULT 0,
				modified_classes INT NOT NULL DEFAULT 0,
				warning_count INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				old_version TEXT NOT NULL,
				new_version TEXT NOT NULL,
				added_classes INT NOT NULL DEFAULT 0,
				removed_classes INT NOT NULL DEFAULT 0,
				modified_classes INT NOT NULL DEFAULT 0,
				warning_count INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				old_version TEXT NOT NULL,
				new_version TEXT NOT NULL,
				added_classes INTEGER NOT NULL DEFAULT 0,
				removed_classes INTEGER NOT NULL DEFAULT 0,
				modified_classes INTEGER NOT NULL DEFAULT 0,
				warning_count INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateClassChangesQuery returns the CREATE TABLE query for docdiff_class_changes.
func getCreateClassChangesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(classChangesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				class_name VARCHAR(255) NOT NULL,
				category VARCHAR(64) NOT NULL,
				added INT NOT NULL,
				modified INT NOT NULL,
				removed INT NOT NULL,
				PRIMARY KEY (run_id, class_name, category)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				class_name TEXT NOT NULL,
				category TEXT NOT NULL,
				added INT NOT NULL,
				modified INT NOT NULL,
				removed INT NOT NULL,
				PRIMARY KEY (run_id, class_name, category)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				class_name TEXT NOT NULL,
				category TEXT NOT NULL,
				added INTEGER NOT NULL,
				modified INTEGER NOT NULL,
				removed INTEGER NOT NULL,
				PRIMARY KEY (run_id, class_name, category)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(runUUID string, startTime time.Time, oldVersion, newVersion string, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	args := []any{runUUID, formatTime(startTime, hs.backend), oldVersion, newVersion, string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, old_version, new_version, config_params) VALUES ($1, $2, $3, $4, $5) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, old_version, new_version, config_params) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, diff schema.DiffResult, warningCount int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	// First, get the start_time to calculate duration
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	start := timeScanner{backend: hs.backend}
	if err := hs.db.QueryRow(query, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	if startTime == nil {
		return fmt.Errorf("run %d has no start_time", runID)
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(*startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, added_classes = %s, removed_classes = %s, modified_classes = %s, warning_count = %s WHERE run_id = %s`,
		quotedTableName,
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3),
		placeholder(hs.backend, 4), placeholder(hs.backend, 5), placeholder(hs.backend, 6),
		placeholder(hs.backend, 7))
	args := []any{
		formatTime(endTime, hs.backend), durationMs,
		len(diff.AddedClasses), len(diff.RemovedClasses), len(diff.ModifiedClasses),
		warningCount, runID,
	}

	if _, err := hs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// RecordClassChanges stores the per-class change counts of a run in one transaction.
func (hs *HistoryStoreImpl) RecordClassChanges(runID int64, records []schema.ClassChangeRecord) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil || len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, class_name, category, added, modified, removed) VALUES (%s)`,
		quoteTableName(classChangesTable, hs.backend), placeholderList(hs.backend, 6))

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare class change insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.Exec(runID, r.ClassName, r.Category, r.Added, r.Modified, r.Removed); err != nil {
			return fmt.Errorf("failed to insert class change %s/%s: %w", r.ClassName, r.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit class changes: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)

	// Get total runs
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		last := timeScanner{backend: hs.backend}
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		// Get oldest run time
		oldest := timeScanner{backend: hs.backend}
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(oldestRunQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}

		// Get total recorded changes
		changesQuery := fmt.Sprintf("SELECT COALESCE(SUM(added + modified + removed), 0) FROM %s", quoteTableName(classChangesTable, hs.backend))
		if err := hs.db.QueryRow(changesQuery).Scan(&status.TotalChanges); err != nil {
			return status, fmt.Errorf("failed to get total changes: %w", err)
		}
	}

	// Get table sizes
	for _, table := range []string{runsTable, classChangesTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, old_version, new_version,
		added_classes, removed_classes, modified_classes, warning_count, config_params
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		start := timeScanner{backend: hs.backend}
		end := timeScanner{backend: hs.backend}
		if err := rows.Scan(&record.RunID, &record.RunUUID, start.dest(), end.dest(), &record.RunDurationMs,
			&record.OldVersion, &record.NewVersion, &record.AddedClasses, &record.RemovedClasses,
			&record.ModifiedClasses, &record.WarningCount, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// GetAllClassChanges retrieves all class change records from the store.
func (hs *HistoryStoreImpl) GetAllClassChanges() ([]schema.ClassChangeRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, class_name, category, added, modified, removed
		FROM %s ORDER BY run_id, class_name, category`, quoteTableName(classChangesTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query class changes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ClassChangeRecord
	for rows.Next() {
		var record schema.ClassChangeRecord
		if err := rows.Scan(&record.RunID, &record.ClassName, &record.Category,
			&record.Added, &record.Modified, &record.Removed); err != nil {
			return nil, fmt.Errorf("failed to scan class change: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class changes: %w", err)
	}

	return results, nil
}
