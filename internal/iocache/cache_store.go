package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// reportDialect holds the per-backend SQL of the report table.
type reportDialect struct {
	keyType  string
	blobType string
	intType  string
	upsert   string // %s is the quoted table name
}

var reportDialects = map[schema.DatabaseBackend]reportDialect{
	schema.SQLiteBackend: {
		keyType:  "TEXT",
		blobType: "BLOB",
		intType:  "INTEGER",
		upsert: `INSERT INTO %s (fingerprint, report, format_version, created_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (fingerprint) DO UPDATE SET report = excluded.report, format_version = excluded.format_version, created_at = excluded.created_at`,
	},
	schema.MySQLBackend: {
		keyType:  "CHAR(64)",
		blobType: "LONGBLOB",
		intType:  "BIGINT",
		upsert: `INSERT INTO %s (fingerprint, report, format_version, created_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE report = new.report, format_version = new.format_version, created_at = new.created_at`,
	},
	schema.PostgreSQLBackend: {
		keyType:  "CHAR(64)",
		blobType: "BYTEA",
		intType:  "BIGINT",
		upsert: `INSERT INTO %s (fingerprint, report, format_version, created_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (fingerprint) DO UPDATE SET report = EXCLUDED.report, format_version = EXCLUDED.format_version, created_at = EXCLUDED.created_at`,
	},
}

// CacheStoreImpl keeps serialized change reports keyed by the fingerprint
// of both documents and the diff options.
type CacheStoreImpl struct {
	db      *sql.DB
	table   string
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// NewCacheStore opens the report table for the backend. NoneBackend yields a
// store that never hits and discards writes.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}
	store := &CacheStoreImpl{table: tableName, backend: backend, connStr: connStr}
	if backend == schema.NoneBackend {
		return store, nil
	}

	db, err := openDB(backend, connStr, GetDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report cache: %w", err)
	}
	store.db = db

	if _, err := db.Exec(store.createTableQuery()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return store, nil
}

func (s *CacheStoreImpl) quotedTable() string {
	return quoteTableName(s.table, s.backend)
}

func (s *CacheStoreImpl) createTableQuery() string {
	d := reportDialects[s.backend]
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		fingerprint %s PRIMARY KEY,
		report %s NOT NULL,
		format_version INTEGER NOT NULL,
		created_at %s NOT NULL
	)`, s.quotedTable(), d.keyType, d.blobType, d.intType)
}

func (s *CacheStoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// Get returns the stored report, its format version and its creation time
// in Unix seconds. A miss returns sql.ErrNoRows.
func (s *CacheStoreImpl) Get(key string) ([]byte, int, int64, error) {
	if s.disabled() {
		return nil, 0, 0, sql.ErrNoRows
	}

	var (
		report    []byte
		version   int
		createdAt int64
	)
	query := fmt.Sprintf(`SELECT report, format_version, created_at FROM %s WHERE fingerprint = %s`,
		s.quotedTable(), placeholder(s.backend, 1))
	if err := s.db.QueryRow(query, key).Scan(&report, &version, &createdAt); err != nil {
		return nil, 0, 0, err
	}
	return report, version, createdAt, nil
}

// Set stores a report, replacing any report with the same fingerprint.
func (s *CacheStoreImpl) Set(key string, value []byte, version int, timestamp int64) error {
	if s.disabled() {
		return nil
	}
	_, err := s.db.Exec(fmt.Sprintf(reportDialects[s.backend].upsert, s.quotedTable()), key, value, version, timestamp)
	return err
}

// Close closes the underlying DB connection.
func (s *CacheStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus reports the number of cached reports and their age range.
func (s *CacheStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.disabled() {
		return status, nil
	}

	var newest, oldest sql.NullInt64
	query := fmt.Sprintf("SELECT COUNT(*), MAX(created_at), MIN(created_at) FROM %s", s.quotedTable())
	if err := s.db.QueryRow(query).Scan(&status.TotalEntries, &newest, &oldest); err != nil {
		return status, fmt.Errorf("failed to read cache statistics: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}
	status.LastEntryTime = time.Unix(newest.Int64, 0)
	status.OldestEntryTime = time.Unix(oldest.Int64, 0)
	status.TableSizeBytes = s.tableSize()
	return status, nil
}

// tableSize estimates the storage used by the report table. Errors yield 0.
func (s *CacheStoreImpl) tableSize() int64 {
	var (
		row  *sql.Row
		size int64
	)
	switch s.backend {
	case schema.SQLiteBackend:
		// page_count * page_size covers the whole database file
		row = s.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil || cfg.DBName == "" {
			return 0
		}
		row = s.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, s.table)
	case schema.PostgreSQLBackend:
		row = s.db.QueryRow("SELECT pg_total_relation_size($1)", s.table)
	default:
		return 0
	}
	if err := row.Scan(&size); err != nil {
		return 0
	}
	return size
}
