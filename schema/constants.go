// Package schema has the corpus records, change models and shared constants of docdiff.
package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// Bucket represents a classification axis used for filtered summary totals.
	Bucket string

	// ChangeKind represents the kind of a change node.
	ChangeKind string

	// WarningKind represents a non-fatal condition found while diffing.
	WarningKind string
)

// All output modes supported.
const (
	MarkdownOut OutputMode = "markdown" // default
	TextOut     OutputMode = "text"
	JSONOut     OutputMode = "json"
	YAMLOut     OutputMode = "yaml"
	CSVOut      OutputMode = "csv"
	ParquetOut  OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All buckets supported. AllBucket is always computed.
const (
	AllBucket        Bucket = "all"
	PrivateBucket    Bucket = "private"
	DeprecatedBucket Bucket = "deprecated"
	ProtectedBucket  Bucket = "protected"
	StaticBucket     Bucket = "static"
	RemovedBucket    Bucket = "removed"
)

// All change kinds.
const (
	AddedKind    ChangeKind = "added"
	ModifiedKind ChangeKind = "modified"
	RemovedKind  ChangeKind = "removed"
)

// All warning kinds.
const (
	DuplicateClassWarning    WarningKind = "duplicate-class"
	DuplicateMemberWarning   WarningKind = "duplicate-member"
	UnmatchedCategoryWarning WarningKind = "unmatched-category"
	MissingNameWarning       WarningKind = "missing-name"
	IgnoredItemWarning       WarningKind = "ignored-item"
)

// ClassesCategory is the pseudo-category that counts classes in the summary.
const ClassesCategory = "classes"

// ClassType is the $type value of a real class record.
const ClassType = "class"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	MarkdownOut: {},
	TextOut:     {},
	JSONOut:     {},
	YAMLOut:     {},
	CSVOut:      {},
	ParquetOut:  {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidBuckets lists all buckets that can be configured in addition to AllBucket.
var ValidBuckets = map[Bucket]struct{}{
	PrivateBucket:    {},
	DeprecatedBucket: {},
	ProtectedBucket:  {},
	StaticBucket:     {},
	RemovedBucket:    {},
}
