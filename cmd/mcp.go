package cmd

import (
	"github.com/huangsam/homebase/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [trace-file]",
	Short: "Start the homebase MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents analyze location traces
through the analyze_trace, get_baselines and classify_location tools.

An optional trace file becomes the default for tools called without trace_path.`,
	Args: cobra.MaximumNArgs(1),
	// Logs go to stderr, which keeps stdout free for the protocol.
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, reportManager)
	},
}
