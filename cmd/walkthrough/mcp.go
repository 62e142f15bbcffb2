package main

import (
	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves the walkthrough tools over stdio so AI agents can list the steps
of a mode and reset the seen flag of a user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, debug, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.ServeMCP(cmd.Context(), cfg, debug)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
