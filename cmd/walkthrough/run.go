package main

import (
	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the walkthrough in the terminal",
	Long:  `Plays the tour step by step. Each press of Enter counts as a click on the page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, debug, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("autostart") {
			cfg.Autostart, _ = cmd.Flags().GetBool("autostart")
		}
		force, _ := cmd.Flags().GetBool("force")
		missing, _ := cmd.Flags().GetStringSlice("missing")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunTour(ctx, cli.RunOptions{
			Config:  cfg,
			Force:   force,
			Missing: missing,
			Debug:   debug,
			In:      cmd.InOrStdin(),
			Out:     cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("autostart", false, "Show the first step immediately")
	runCmd.Flags().Bool("force", false, "Show the tour even if it was already seen")
	runCmd.Flags().StringSlice("missing", nil, "Targets absent from the page (comma-separated)")
}
