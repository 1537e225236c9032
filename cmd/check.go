package cmd

import (
	"errors"
	"os"

	"github.com/branflake2267/docs-sub001/core"
	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/internal/iocache"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD gating.
var checkCmd = &cobra.Command{
	Use:   "check <old.json> <new.json>",
	Short: "Fail when two documentation corpora differ (for CI/CD pipelines)",
	Long: `Compare two documentation corpora and exit with a non-zero code when visible changes exist.

Designed for CI/CD integration: prints a concise per-category result and exits 1
when any change survives --exclude-buckets.

Use cases:
- Guard a release branch against accidental public API changes
- Verify that regenerated docs match the published ones
- Gate merges that touch documented classes

Examples:
  # Fail on any change
  docdiff check docs/published.json docs/generated.json

  # Ignore private and deprecated API
  docdiff check old.json new.json --exclude-buckets private,deprecated`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteCheck(rootCtx, cfg, cacheManager)
		if errors.Is(err, core.ErrChangesFound) {
			iocache.CloseCaching()
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Change check failed", err)
		}
	},
}
