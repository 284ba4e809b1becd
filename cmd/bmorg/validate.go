package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bmorg/internal/export"
	"bmorg/internal/model"
	"bmorg/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check bookmark links and find duplicates",
	Long: `Check every bookmark URL for liveness and report duplicate entries.

Each distinct URL is probed once over HTTP with bounded concurrency. Links
answering 4xx/5xx are dead; network failures count as unknown, not dead.

Examples:
  bmorg validate bookmarks.html
  bmorg validate bookmarks.html --concurrency 20 --timeout 3s
  bmorg validate bookmarks.html -o report.json
  bmorg validate bookmarks.html --check-links=false`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var (
	validateCheckLinks     bool
	validateFindDuplicates bool
	validateOutput         string
	validateConcurrency    int
	validateTimeout        time.Duration
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckLinks, "check-links", true, "Probe each URL for liveness")
	validateCmd.Flags().BoolVar(&validateFindDuplicates, "find-duplicates", true, "Report duplicate bookmarks")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "Write the full JSON report to this file")
	validateCmd.Flags().IntVar(&validateConcurrency, "concurrency", 0, "Number of probe workers (default from config)")
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 0, "Per-request timeout (default from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyProbeFlags(cmd, cfg, validateConcurrency, validateTimeout)

	res, err := parseBookmarkFile(args[0])
	if err != nil {
		return err
	}
	if !jsonOutput {
		printParseWarnings(res.Warnings)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checks map[string]model.CheckResult
	if validateCheckLinks {
		prober := validator.NewHTTPProber(cfg.Probe.Timeout, cfg.Probe.UserAgent, cfg.Probe.ExcludeDomains)
		opts := validator.Options{
			Concurrency: cfg.Probe.Concurrency,
			Logger:      log,
		}
		if !jsonOutput {
			opts.Progress = func(completed, total int) {
				fmt.Fprintf(os.Stderr, "\rChecking links: %d/%d", completed, total)
			}
		}
		checks = validator.CheckLinks(ctx, res.Bookmarks, prober, opts)
		if !jsonOutput && len(checks) > 0 {
			fmt.Fprintln(os.Stderr)
		}
	}

	var groups []model.DuplicateGroup
	if validateFindDuplicates {
		groups = validator.FindDuplicates(res.Bookmarks)
	}

	report := export.BuildReport(args[0], res.Bookmarks, checks, groups)

	if validateOutput != "" {
		file, err := os.Create(validateOutput)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()

		if err := export.WriteReport(file, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote report to %s\n", validateOutput)
	}

	if jsonOutput {
		if err := export.WriteReport(os.Stdout, report); err != nil {
			return err
		}
	} else {
		printReportSummary(report)
	}

	if ctx.Err() != nil {
		return fmt.Errorf("link checking interrupted")
	}
	return nil
}

func printReportSummary(report export.Report) {
	fmt.Printf("Checked %s: %d bookmarks", report.Source, report.Total)
	if report.CheckedURLs > 0 {
		fmt.Printf(", %d distinct URLs probed", report.CheckedURLs)
	}
	fmt.Println()

	if report.CheckedURLs > 0 {
		fmt.Printf("  alive: %d  dead: %d  unknown: %d\n", report.Alive, report.Dead, report.Unknown)
	}

	if len(report.Problems) > 0 {
		fmt.Println()
		fmt.Println("Problem links:")
		for _, p := range report.Problems {
			if p.Reason != "" {
				fmt.Printf("  [%s] %s (%s)\n", p.Status, p.URL, p.Reason)
			} else {
				fmt.Printf("  [%s] %s\n", p.Status, p.URL)
			}
		}
	}

	if len(report.Duplicates) > 0 {
		fmt.Println()
		fmt.Printf("Duplicate groups: %d\n", len(report.Duplicates))
		for _, g := range report.Duplicates {
			fmt.Printf("  %s (%d entries)\n", g.URL, g.Count)
		}
	}
}
