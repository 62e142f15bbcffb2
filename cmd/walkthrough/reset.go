package main

import (
	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [user]",
	Short: "Clear the seen flag so the walkthrough shows again",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		var user string
		if len(args) == 1 {
			user = args[0]
		}
		return cli.ResetSeen(cmd.Context(), cmd.OutOrStdout(), cfg, user)
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
