package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "stackforge",
	Short: "Scaffold multi-service containerized development stacks",
	Long: `Stackforge generates ready-to-run project trees for containerized stacks:
backend and frontend application skeletons, databases, caches and vector
stores, wired together through a generated compose file and devcontainer.

Components are selected explicitly or through a named profile; implied
components and default runtimes are added automatically and conflicting
selections are rejected before anything touches the filesystem.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
