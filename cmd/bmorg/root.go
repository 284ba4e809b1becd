package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bmorg/internal/config"
	"bmorg/internal/logger"
	"bmorg/internal/parser"
)

var (
	cfgFile    string
	jsonOutput bool
	debugMode  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bmorg",
	Short: "Parse, validate and organize browser bookmark exports",
	Long: `bmorg reads the Netscape bookmark files browsers export, checks the links
inside, finds duplicates and rebuilds the collection as a clean category
tree you can import right back.

Start with 'bmorg import bookmarks.html' to see what a file holds, then
'bmorg validate' to find dead links and 'bmorg organize' to write the
reorganized file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/bmorg/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// newLogger builds the CLI logger, honoring --debug.
func newLogger() logger.Logger {
	level := "info"
	if debugMode {
		level = "debug"
	}
	return logger.New(level, true)
}

// loadConfig resolves configuration from file, environment and defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// applyProbeFlags lets per-command flags override the configured probe settings.
func applyProbeFlags(cmd *cobra.Command, cfg *config.Config, concurrency int, timeout time.Duration) {
	if cmd.Flags().Changed("concurrency") {
		cfg.Probe.Concurrency = concurrency
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Probe.Timeout = timeout
	}
}

// parseBookmarkFile reads and parses a single bookmark export file.
func parseBookmarkFile(path string) (*parser.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmark file: %w", err)
	}
	defer file.Close()

	res, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return res, nil
}

// printParseWarnings surfaces recoverable parse problems on stderr.
func printParseWarnings(warnings []parser.Warning) {
	for _, w := range warnings {
		switch {
		case w.URL != "":
			fmt.Fprintf(os.Stderr, "Warning: %s (%s)\n", w.Reason, w.URL)
		case w.Title != "":
			fmt.Fprintf(os.Stderr, "Warning: %s (%q)\n", w.Reason, w.Title)
		default:
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w.Reason)
		}
	}
}
