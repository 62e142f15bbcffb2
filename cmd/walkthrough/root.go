package main

import (
	"fmt"
	"os"

	"github.com/aretw0/walkthrough/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "walkthrough",
	Short: "Walkthrough is an onboarding tooltip tour for the annotation tool",
	Long: `Walkthrough guides new annotators through the interface one tooltip at a time,
remembers who has already seen it, and serves the tour to browsers over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and lifecycle hooks")
	rootCmd.PersistentFlags().String("mode", "", "Annotation mode: labels, points or boundingBoxes")
}

// loadConfig resolves the config file, then applies the --mode override.
func loadConfig(cmd *cobra.Command) (config.Config, bool, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, debug, err
	}
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		cfg.Mode = mode
	}
	return cfg, debug, nil
}
