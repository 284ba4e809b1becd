package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"bmorg/internal/model"
)

var csvHeader = []string{"url", "title", "description", "folder_path", "category", "add_date", "tags"}

// WriteCSV renders the tree as a flat CSV listing, one row per bookmark in
// depth-first tree order. The folder_path column joins folder names with "/"
// and leaves the root out; category repeats the top-level folder.
func WriteCSV(w io.Writer, root *model.FolderNode) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeCSVNode(csvWriter, root, nil); err != nil {
		return err
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// writeCSVNode writes the node's own bookmarks, then descends into its
// subfolders. path holds the folder names from just below the root down to
// this node.
func writeCSVNode(csvWriter *csv.Writer, node *model.FolderNode, path []string) error {
	category := ""
	if len(path) > 0 {
		category = path[0]
	}

	for _, b := range node.Bookmarks {
		addDate := ""
		if !b.AddDate.IsZero() {
			addDate = b.AddDate.Format(time.RFC3339)
		}
		row := []string{
			b.URL,
			b.Title,
			b.Description,
			strings.Join(path, "/"),
			category,
			addDate,
			strings.Join(b.Tags, ","),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	for _, c := range node.Children {
		if err := writeCSVNode(csvWriter, c, append(path, c.Name)); err != nil {
			return err
		}
	}
	return nil
}
