package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"bmorg/internal/model"
)

// WriteHTML renders the tree in Netscape bookmark file format, the dialect
// browsers read back on import. Optional attributes are only emitted when the
// bookmark carries them, so a round trip through the parser is lossless.
func WriteHTML(w io.Writer, root *model.FolderNode) error {
	title := html.EscapeString(root.Name)

	if _, err := fmt.Fprintf(w, "<!DOCTYPE NETSCAPE-Bookmark-file-1>\n"); err != nil {
		return fmt.Errorf("failed to write HTML header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n"); err != nil {
		return fmt.Errorf("failed to write HTML meta: %w", err)
	}
	if _, err := fmt.Fprintf(w, "<TITLE>%s</TITLE>\n", title); err != nil {
		return fmt.Errorf("failed to write HTML title: %w", err)
	}
	if _, err := fmt.Fprintf(w, "<H1>%s</H1>\n", title); err != nil {
		return fmt.Errorf("failed to write HTML heading: %w", err)
	}
	if _, err := fmt.Fprintf(w, "<DL><p>\n"); err != nil {
		return fmt.Errorf("failed to write HTML list start: %w", err)
	}

	if err := writeItems(w, root, 1); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "</DL><p>\n"); err != nil {
		return fmt.Errorf("failed to write HTML list end: %w", err)
	}
	return nil
}

// writeItems recursively writes a node's subfolders, then its bookmarks.
func writeItems(w io.Writer, node *model.FolderNode, indent int) error {
	prefix := strings.Repeat("    ", indent)

	for _, folder := range node.Children {
		if _, err := fmt.Fprintf(w, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(folder.Name)); err != nil {
			return fmt.Errorf("failed to write folder heading: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s<DL><p>\n", prefix); err != nil {
			return fmt.Errorf("failed to write folder list start: %w", err)
		}
		if err := writeItems(w, folder, indent+1); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s</DL><p>\n", prefix); err != nil {
			return fmt.Errorf("failed to write folder list end: %w", err)
		}
	}

	for _, b := range node.Bookmarks {
		if err := writeBookmark(w, b, prefix); err != nil {
			return err
		}
	}
	return nil
}

func writeBookmark(w io.Writer, b model.Bookmark, prefix string) error {
	if _, err := fmt.Fprintf(w, "%s<DT><A HREF=\"%s\"", prefix, html.EscapeString(b.URL)); err != nil {
		return fmt.Errorf("failed to write bookmark entry: %w", err)
	}
	if !b.AddDate.IsZero() {
		if _, err := fmt.Fprintf(w, " ADD_DATE=\"%d\"", b.AddDate.Unix()); err != nil {
			return fmt.Errorf("failed to write add date: %w", err)
		}
	}
	if !b.LastModified.IsZero() {
		if _, err := fmt.Fprintf(w, " LAST_MODIFIED=\"%d\"", b.LastModified.Unix()); err != nil {
			return fmt.Errorf("failed to write last modified: %w", err)
		}
	}
	if b.Icon != "" {
		if _, err := fmt.Fprintf(w, " ICON=\"%s\"", html.EscapeString(b.Icon)); err != nil {
			return fmt.Errorf("failed to write icon: %w", err)
		}
	}
	if len(b.Tags) > 0 {
		if _, err := fmt.Fprintf(w, " TAGS=\"%s\"", html.EscapeString(strings.Join(b.Tags, ","))); err != nil {
			return fmt.Errorf("failed to write tags: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, ">%s</A>\n", html.EscapeString(b.Title)); err != nil {
		return fmt.Errorf("failed to write bookmark title: %w", err)
	}
	if b.Description != "" {
		if _, err := fmt.Fprintf(w, "%s<DD>%s\n", prefix, html.EscapeString(b.Description)); err != nil {
			return fmt.Errorf("failed to write description: %w", err)
		}
	}
	return nil
}
