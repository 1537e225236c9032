package cmd

import (
	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the docdiff MCP server",
	Long: `Launch an MCP server on stdio that allows AI agents to diff documentation corpora via standard tools.

Tools:
  diff_corpora - full JSON change report for two documents
  diff_summary - visible change counts per category

Diff options (categories, buckets, properties, backends) come from the usual
flags, environment and config file; each tool call names its own documents.`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := readInput(); err != nil {
			return err
		}
		if err := contract.ProcessAndValidateOptions(cfg, input); err != nil {
			return err
		}
		return initStores()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
