package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bmorg/internal/search"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <file> <query>",
	Short: "Fuzzy-search bookmarks by title",
	Long: `Search a bookmark file by fuzzy title match, best matches first.

Examples:
  bmorg search bookmarks.html golang
  bmorg search bookmarks.html "home lab" --limit 5 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "Maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	res, err := parseBookmarkFile(args[0])
	if err != nil {
		return err
	}

	results := search.Bookmarks(res.Bookmarks, args[1])
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if jsonOutput {
		if results == nil {
			results = []search.Result{}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No matches found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tURL\tFOLDER")
	fmt.Fprintln(w, "-----\t---\t------")
	for _, r := range results {
		folder := strings.Join(r.Bookmark.FolderPath, "/")
		if folder == "" {
			folder = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(r.Bookmark.Title, 50), truncate(r.Bookmark.URL, 60), folder)
	}
	w.Flush()

	return nil
}

// truncate shortens a string to maxLen characters, adding "..." when cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
