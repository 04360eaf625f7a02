// Package main provides the parsernode CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xinminlabs/parser-node-ext/internal/config"
	"github.com/xinminlabs/parser-node-ext/pkg/version"
)

var (
	cfgFile string //nolint:gochecknoglobals // CLI flag variable
	verbose bool   //nolint:gochecknoglobals // CLI flag variable
	quiet   bool   //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parsernode",
		Short: "Parse Ruby source into tagged syntax trees with named child access",
		Long: `parsernode parses Ruby source files into tagged syntax trees and
exposes named accessors over the positional children of every node.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.parsernode.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "parsernode %s (commit: %s, built: %s)\n",
				version.Number, version.GitHash, version.BuildDate)
		},
	}

	return cmd
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the CLI logger honoring the configured level and the
// verbose and quiet flags.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn

	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	if verbose {
		level = slog.LevelDebug
	}

	if quiet {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
