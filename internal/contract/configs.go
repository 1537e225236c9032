package contract

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/gobwas/glob"
)

// StdoutPath is the output file value that forces writing to stdout.
const StdoutPath = "-"

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DefaultCategories is the member category list and its iteration order.
var DefaultCategories = []string{"configs", "properties", "methods", "static-methods", "events", "vars"}

// DefaultMemberProps is the scan order of scalar properties compared on members and nested items.
var DefaultMemberProps = []string{
	"access", "alias", "alternateClassNames", "constructor", "deprecatedVersion", "hide",
	"inheritdoc", "localDoc", "mixins", "optional", "preventable", "readonly", "requires",
	"static", "type", "uses", "value",
}

// DefaultClassProps is the scan order of scalar properties compared on classes.
var DefaultClassProps = []string{"alias", "extends", "mixins", "uses", "singleton", "access", "requires"}

// DefaultBuckets is the set of buckets computed in addition to the all bucket.
var DefaultBuckets = []schema.Bucket{schema.PrivateBucket, schema.DeprecatedBucket}

// Config holds the runtime configuration for a diff run.
// This struct remains the "final, validated" config.
type Config struct {
	OldPath    string
	NewPath    string
	OldVersion string
	NewVersion string

	Categories     []string
	MemberProps    []string
	ClassProps     []string
	ClassDetails   bool
	AllProps       bool
	Buckets        []schema.Bucket
	ExcludeBuckets []schema.Bucket
	Excludes       []string
	ExcludeGlobs   []glob.Glob
	Workers        int

	Output     schema.OutputMode
	OutputFile string // resolved destination; empty means stdout
	Width      int    // Terminal width override (0 = auto-detect)
	Verbose    bool
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	OldPathStr string
	NewPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OldVersion       string `mapstructure:"old-version"`
	NewVersion       string `mapstructure:"new-version"`
	Categories       string `mapstructure:"categories"`
	MemberProps      string `mapstructure:"member-props"`
	ClassProps       string `mapstructure:"class-props"`
	ClassDetails     bool   `mapstructure:"class-details"`
	AllProps         bool   `mapstructure:"all-props"`
	Buckets          string `mapstructure:"buckets"`
	ExcludeBuckets   string `mapstructure:"exclude-buckets"`
	Exclude          string `mapstructure:"exclude"`
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Verbose          bool   `mapstructure:"verbose"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Categories = slices.Clone(c.Categories)
	clone.MemberProps = slices.Clone(c.MemberProps)
	clone.ClassProps = slices.Clone(c.ClassProps)
	clone.Buckets = slices.Clone(c.Buckets)
	clone.ExcludeBuckets = slices.Clone(c.ExcludeBuckets)
	clone.Excludes = slices.Clone(c.Excludes)
	clone.ExcludeGlobs = slices.Clone(c.ExcludeGlobs)
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCorpusPaths(cfg, input.OldPathStr, input.NewPathStr, input.OldVersion, input.NewVersion); err != nil {
		return err
	}
	if err := processDiffOptions(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	resolveOutputFile(cfg, input.OutputFile)
	return nil
}

// ProcessAndValidateOptions validates everything except the document pair.
// Long-running commands receive the documents per request and use RevalidateCorpora.
func ProcessAndValidateOptions(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDiffOptions(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// RevalidateCorpora points an already validated config at a new pair of documents.
func RevalidateCorpora(cfg *Config, oldPath, newPath, oldVersion, newVersion string) error {
	if err := processCorpusPaths(cfg, oldPath, newPath, oldVersion, newVersion); err != nil {
		return err
	}
	resolveOutputFile(cfg, "")
	return nil
}

// RevalidateExcludeBuckets replaces the excluded buckets of an already validated config.
// Only computed buckets can be excluded.
func RevalidateExcludeBuckets(cfg *Config, list string) error {
	excluded, err := parseBuckets(list)
	if err != nil {
		return err
	}
	for _, b := range excluded {
		if !slices.Contains(cfg.Buckets, b) {
			return fmt.Errorf("cannot exclude bucket '%s' because it is not computed (add it to --buckets)", b)
		}
	}
	cfg.ExcludeBuckets = excluded
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseList splits a comma-separated list, trimming blanks and dropping duplicates.
func ParseList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		p := strings.TrimSpace(part)
		if p == "" || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// VersionFromPath derives a version label from a document path, e.g. "docs/5.0.1.json" -> "5.0.1".
func VersionFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultOutputFile returns the conventional report destination for a pair of versions.
func DefaultOutputFile(oldVersion, newVersion string, mode schema.OutputMode) string {
	ext := "md"
	if mode == schema.ParquetOut {
		ext = "parquet"
	}
	return fmt.Sprintf("%s_to_%s_changes.%s", oldVersion, newVersion, ext)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.ClassDetails = input.ClassDetails
	cfg.AllProps = input.AllProps

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be markdown, text, json, yaml, csv, parquet", input.Output)
	}

	return nil
}

// processCorpusPaths validates the two document paths and resolves version labels.
func processCorpusPaths(cfg *Config, oldPath, newPath, oldVersion, newVersion string) error {
	cfg.OldPath = strings.TrimSpace(oldPath)
	cfg.NewPath = strings.TrimSpace(newPath)
	if cfg.OldPath == "" || cfg.NewPath == "" {
		return fmt.Errorf("both an old and a new document path are required")
	}

	cfg.OldVersion = strings.TrimSpace(oldVersion)
	if cfg.OldVersion == "" {
		cfg.OldVersion = VersionFromPath(cfg.OldPath)
	}
	cfg.NewVersion = strings.TrimSpace(newVersion)
	if cfg.NewVersion == "" {
		cfg.NewVersion = VersionFromPath(cfg.NewPath)
	}
	return nil
}

// processDiffOptions handles categories, property lists, buckets and class excludes.
func processDiffOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Categories = ParseList(input.Categories)
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	if slices.Contains(cfg.Categories, schema.ClassesCategory) {
		return fmt.Errorf("'%s' is reserved and cannot be used as a category", schema.ClassesCategory)
	}

	cfg.MemberProps = ParseList(input.MemberProps)
	if len(cfg.MemberProps) == 0 {
		return fmt.Errorf("at least one member property is required")
	}
	cfg.ClassProps = ParseList(input.ClassProps)

	buckets, err := parseBuckets(input.Buckets)
	if err != nil {
		return err
	}
	cfg.Buckets = buckets

	if err := RevalidateExcludeBuckets(cfg, input.ExcludeBuckets); err != nil {
		return err
	}

	cfg.Excludes = ParseList(input.Exclude)
	cfg.ExcludeGlobs = make([]glob.Glob, 0, len(cfg.Excludes))
	for _, pattern := range cfg.Excludes {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
		cfg.ExcludeGlobs = append(cfg.ExcludeGlobs, g)
	}

	return nil
}

// parseBuckets parses a comma-separated bucket list. The all bucket is implied and rejected.
func parseBuckets(s string) ([]schema.Bucket, error) {
	var out []schema.Bucket
	for _, name := range ParseList(strings.ToLower(s)) {
		b := schema.Bucket(name)
		if _, ok := schema.ValidBuckets[b]; !ok {
			return nil, fmt.Errorf("invalid bucket '%s'. must be private, deprecated, protected, static, removed", name)
		}
		out = append(out, b)
	}
	return out, nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// resolveOutputFile picks the report destination. Markdown and parquet default to
// the conventional file name; every other format defaults to stdout.
func resolveOutputFile(cfg *Config, requested string) {
	switch {
	case requested == StdoutPath:
		cfg.OutputFile = ""
	case requested != "":
		cfg.OutputFile = requested
	case cfg.Output == schema.MarkdownOut || cfg.Output == schema.ParquetOut:
		cfg.OutputFile = DefaultOutputFile(cfg.OldVersion, cfg.NewVersion, cfg.Output)
	default:
		cfg.OutputFile = ""
	}
}
