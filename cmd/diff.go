package cmd

import (
	"github.com/branflake2267/docs-sub001/core"
	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/spf13/cobra"
)

// diffCmd compares two corpus documents and writes the change report.
var diffCmd = &cobra.Command{
	Use:   "diff <old.json> <new.json>",
	Short: "Write the change report between two documentation corpora.",
	Long: `Compare the class lists of two documentation corpora and write a change report.

Each document is a JSON array of class records (or an object with a "classes" array).
Classes are matched by name; members are matched by name within each category, and
nested items such as method parameters are compared recursively.

The report lists:
- Added classes and removed classes
- Modified classes, per category, with the first differing property of each member
- Summary counts per category, with bucket totals (private, deprecated, ...)

Markdown and Parquet reports are written to <old>_to_<new>_changes.<ext> unless
--output-file is given. Other formats go to stdout.

Examples:
  # Write 6.0_to_7.0_changes.md
  docdiff diff docs/6.0.json docs/7.0.json

  # Hide private API from the report and the totals
  docdiff diff docs/6.0.json docs/7.0.json --exclude-buckets private

  # Report every differing property, including class-level ones
  docdiff diff old.json new.json --all-props --class-details

  # Render for the terminal
  docdiff diff old.json new.json --output text --output-file -

  # Export one row per change for analytics
  docdiff diff old.json new.json --output parquet`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDiff(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot diff corpora", err)
		}
	},
}
