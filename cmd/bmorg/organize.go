package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bmorg/internal/analyzer"
	"bmorg/internal/export"
	"bmorg/internal/logger"
	"bmorg/internal/model"
	"bmorg/internal/organizer"
	"bmorg/internal/validator"
)

// organizeCmd represents the organize command
var organizeCmd = &cobra.Command{
	Use:   "organize <file>",
	Short: "Categorize bookmarks and write a reorganized file",
	Long: `Run the full pipeline: parse the file, assign each bookmark a category,
optionally drop dead links and merge duplicates, then write the rebuilt
folder tree.

The output format follows -f, or the -o file extension, and defaults to
the same Netscape HTML browsers import.

Examples:
  bmorg organize bookmarks.html -o organized.html
  bmorg organize bookmarks.html -f json
  bmorg organize bookmarks.html -o clean.html --remove-broken --merge-duplicates`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

var (
	organizeOutput          string
	organizeFormat          string
	organizeRemoveBroken    bool
	organizeMergeDuplicates bool
	organizeMaxPerFolder    int
	organizeConcurrency     int
	organizeTimeout         time.Duration
)

func init() {
	rootCmd.AddCommand(organizeCmd)

	organizeCmd.Flags().StringVarP(&organizeOutput, "output", "o", "", "Output file (default: stdout)")
	organizeCmd.Flags().StringVarP(&organizeFormat, "format", "f", "", "Output format: html, json, csv (default: by extension, else html)")
	organizeCmd.Flags().BoolVar(&organizeRemoveBroken, "remove-broken", false, "Check links and drop dead ones")
	organizeCmd.Flags().BoolVar(&organizeMergeDuplicates, "merge-duplicates", false, "Collapse duplicate URLs into one entry")
	organizeCmd.Flags().IntVar(&organizeMaxPerFolder, "max-per-folder", 0, "Split folders larger than this (default from config)")
	organizeCmd.Flags().IntVar(&organizeConcurrency, "concurrency", 0, "Number of probe workers (default from config)")
	organizeCmd.Flags().DurationVar(&organizeTimeout, "timeout", 0, "Per-request timeout (default from config)")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyProbeFlags(cmd, cfg, organizeConcurrency, organizeTimeout)
	if cmd.Flags().Changed("max-per-folder") {
		cfg.Organizer.MaxPerFolder = organizeMaxPerFolder
	}

	format, err := resolveFormat(organizeFormat, organizeOutput)
	if err != nil {
		return err
	}

	res, err := parseBookmarkFile(args[0])
	if err != nil {
		return err
	}
	printParseWarnings(res.Warnings)

	assignment := analyzer.Categorize(res.Bookmarks, cfg.Analyzer)
	log.Debug("categorized bookmarks",
		logger.Int("bookmarks", len(res.Bookmarks)),
		logger.Int("categories", countCategories(assignment)))

	var checks map[string]model.CheckResult
	if organizeRemoveBroken {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		prober := validator.NewHTTPProber(cfg.Probe.Timeout, cfg.Probe.UserAgent, cfg.Probe.ExcludeDomains)
		opts := validator.Options{
			Concurrency: cfg.Probe.Concurrency,
			Logger:      log,
			Progress: func(completed, total int) {
				fmt.Fprintf(os.Stderr, "\rChecking links: %d/%d", completed, total)
			},
		}
		checks = validator.CheckLinks(ctx, res.Bookmarks, prober, opts)
		if len(checks) > 0 {
			fmt.Fprintln(os.Stderr)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("link checking interrupted")
		}
	}

	var groups []model.DuplicateGroup
	if organizeMergeDuplicates {
		groups = validator.FindDuplicates(res.Bookmarks)
	}

	opts := organizer.Options{
		MaxPerFolder:    cfg.Organizer.MaxPerFolder,
		RemoveBroken:    organizeRemoveBroken,
		MergeDuplicates: organizeMergeDuplicates,
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	root := organizer.Organize(res.Bookmarks, assignment, groups, checks, opts)

	var writer io.Writer = os.Stdout
	if organizeOutput != "" {
		file, err := os.Create(organizeOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	if err := export.Write(writer, root, format); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Organized %d bookmarks into %d folders\n", root.CountBookmarks(), len(root.Children))
	if organizeOutput != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s output to %s\n", format, organizeOutput)
	}
	return nil
}

// resolveFormat picks the export format from the -f flag, then the output
// file extension, then the HTML default.
func resolveFormat(flagValue, outputPath string) (export.Format, error) {
	if flagValue != "" {
		format := export.Format(flagValue)
		switch format {
		case export.FormatHTML, export.FormatJSON, export.FormatCSV:
			return format, nil
		default:
			return "", fmt.Errorf("invalid format '%s'. Valid formats: html, json, csv", flagValue)
		}
	}
	if outputPath != "" {
		if format := export.DetectFormat(outputPath); format != "" {
			return format, nil
		}
	}
	return export.FormatHTML, nil
}

func countCategories(assignment model.Assignment) int {
	seen := make(map[string]struct{})
	for _, category := range assignment {
		seen[category] = struct{}{}
	}
	return len(seen)
}
