package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bmorg/internal/analyzer"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Show collection statistics",
	Long: `Summarize a bookmark file: totals, folder depth, the most common
domains and additions per month.

Examples:
  bmorg stats bookmarks.html
  bmorg stats bookmarks.html --json`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	res, err := parseBookmarkFile(args[0])
	if err != nil {
		return err
	}
	if !jsonOutput {
		printParseWarnings(res.Warnings)
	}

	stats := analyzer.Summarize(res.Bookmarks)

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	}

	fmt.Printf("Bookmarks: %d\n", stats.TotalBookmarks)
	fmt.Printf("Folders:   %d\n", stats.TotalFolders)
	fmt.Printf("Avg depth: %.1f\n", stats.AvgFolderDepth)

	if len(stats.TopDomains) > 0 {
		fmt.Println()
		fmt.Println("Top domains:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DOMAIN\tCOUNT")
		fmt.Fprintln(w, "------\t-----")
		for _, d := range stats.TopDomains {
			fmt.Fprintf(w, "%s\t%d\n", d.Domain, d.Count)
		}
		w.Flush()
	}

	if len(stats.ByMonth) > 0 {
		fmt.Println()
		fmt.Println("Additions by month:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MONTH\tCOUNT")
		fmt.Fprintln(w, "-----\t-----")
		for _, m := range stats.ByMonth {
			fmt.Fprintf(w, "%s\t%d\n", m.Month, m.Count)
		}
		w.Flush()
	}

	return nil
}
