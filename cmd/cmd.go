// Package cmd defines the command-line interface for docdiff.
package cmd

import (
	"strings"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("old-version", "", "Version label of the old corpus (default: old file name)")
	rootCmd.PersistentFlags().String("new-version", "", "Version label of the new corpus (default: new file name)")
	rootCmd.PersistentFlags().String("categories", strings.Join(contract.DefaultCategories, ","), "Comma-separated member categories to compare, in report order")
	rootCmd.PersistentFlags().String("member-props", strings.Join(contract.DefaultMemberProps, ","), "Comma-separated scalar properties compared on members and nested items")
	rootCmd.PersistentFlags().String("class-props", strings.Join(contract.DefaultClassProps, ","), "Comma-separated scalar properties compared on classes")
	rootCmd.PersistentFlags().Bool("class-details", false, "Compare class-level scalar properties")
	rootCmd.PersistentFlags().Bool("all-props", false, "Report every differing property instead of the first one")
	rootCmd.PersistentFlags().String("buckets", schema.FormatBuckets(contract.DefaultBuckets), "Comma-separated summary buckets: private, deprecated, protected, static, removed")
	rootCmd.PersistentFlags().String("exclude-buckets", "", "Comma-separated buckets hidden from the report and subtracted from totals")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated class name globs to skip (e.g. 'Ext.ux.*')")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("output", string(schema.MarkdownOut), "Output format: markdown or text or json or yaml or csv or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to ('-' for stdout)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug records such as ignored items")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
