package cmd

import (
	"github.com/pthm/tonelint/internal/mcpserver"
	"github.com/pthm/tonelint/internal/version"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Expose analyze_tone, analyze_clarity and analyze_message as MCP tools.

Register it with an MCP client, for example:
  claude mcp add tonelint -- tonelint mcp`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalyzer()
		if err != nil {
			return err
		}
		return mcpserver.Serve(mcpserver.New(a, version.Short()))
	},
}

func init() {
	RootCmd.AddCommand(mcpCmd)
}
