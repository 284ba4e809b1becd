// Package export renders an organized bookmark tree in various formats.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bmorg/internal/model"
)

// Format identifies an output encoding for the organized tree.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// DetectFormat determines the output format from the file extension. It
// returns the empty Format when the extension is not one we write.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return FormatHTML
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return ""
	}
}

// Write renders the tree to w in the requested format.
func Write(w io.Writer, root *model.FolderNode, format Format) error {
	switch format {
	case FormatHTML:
		return WriteHTML(w, root)
	case FormatJSON:
		return WriteJSON(w, root)
	case FormatCSV:
		return WriteCSV(w, root)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
