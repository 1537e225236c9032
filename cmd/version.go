package cmd

import (
	"fmt"
	"runtime"

	"github.com/branflake2267/docs-sub001/core"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of docdiff.",
	Long: `Display version information including build details.

Shows:
- Release version, commit and build timestamp
- Report cache format version (cached reports from other formats are ignored)
- Go runtime version

Include this output when reporting differences you believe are wrong.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Print(versionInfo())
	},
}

// versionInfo renders the version block.
func versionInfo() string {
	return fmt.Sprintf("docdiff CLI\n  Version: %s\n  Commit:  %s\n  Built:   %s\n  Cache:   v%d\n  Runtime: %s\n",
		version, commit, date, core.CacheFormatVersion, runtime.Version())
}
