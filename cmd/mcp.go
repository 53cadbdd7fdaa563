package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/fmtgauge/internal/iocache"
	"github.com/huangsam/fmtgauge/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the fmtgauge MCP server",
	Long:  `Launch an MCP server that allows AI agents to inspect and compare saved analyses via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs must stay off stdout in MCP mode; stdio carries the protocol.
		return sharedSetup(args, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		cache, err := iocache.NewFileCache(cfg.CacheDir)
		if err != nil {
			// The cache is an optimization; the server works without one.
			return mcp.StartMCPServer(rootCtx, cfg, nil)
		}
		return mcp.StartMCPServer(rootCtx, cfg, cache)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
