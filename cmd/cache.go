package cmd

import (
	"fmt"
	"os"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/internal/iocache"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config (no run history for cache commands)
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by diff commands. This avoids document validation
// and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the change report cache (improves performance)",
	Long: `Manage the cache that stores finished change reports.

A report is keyed by the contents of both documents and every option that
affects the diff, so repeated runs over the same corpora skip the diff entirely.
Output options (format, destination, excluded buckets) do not affect the key.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached reports

Examples:
  # Check cache status
  docdiff cache status

  # Clear cache after upgrading docdiff
  docdiff cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached change reports",
	Long: `Delete all cached change reports from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  docdiff cache clear

  # Clear MySQL cache (set connection string via env variable)
  DOCDIFF_CACHE_BACKEND=mysql DOCDIFF_CACHE_DB_CONNECT="..." docdiff cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release our own handle before removing the file or table
		iocache.CloseCaching()
		if err := iocache.ClearCache(cfg.CacheBackend, connOrDefault(cfg.CacheBackend, cfg.CacheDBConnect, iocache.GetDBFilePath()), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the change report cache.

Displays:
- Backend type and connection status
- Total number of cached reports
- Last and oldest cache entry timestamps
- Cache table size

Examples:
  # Check cache status
  docdiff cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// connOrDefault returns the SQLite file a store uses: the explicit connection
// string when given, the default path otherwise.
func connOrDefault(backend schema.DatabaseBackend, connStr, defaultPath string) string {
	if backend == schema.SQLiteBackend && connStr != "" {
		return connStr
	}
	return defaultPath
}
