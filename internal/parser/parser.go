// Package parser reads Netscape bookmark file HTML into a flat bookmark list.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"bmorg/internal/model"
)

// ErrUnreadable marks input that could not be read as HTML at all.
var ErrUnreadable = errors.New("unreadable bookmark file")

// Warning records a malformed entry that was skipped or partially read.
type Warning struct {
	Reason string `json:"reason"`
	URL    string `json:"url,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Result holds the bookmarks read from one file plus any recoverable
// warnings encountered along the way.
type Result struct {
	Bookmarks []model.Bookmark
	Warnings  []Warning
}

// Parse reads Netscape bookmark HTML from r. Folder headings (H3) become the
// FolderPath of the anchors below them; files without the DL/DT skeleton
// still yield their bare anchors at the root. Malformed entries are recorded
// as warnings rather than aborting.
func Parse(r io.Reader) (*Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	res := &Result{}

	// Track the folder stack for hierarchy. A heading only takes effect
	// when its DL opens, so it waits in pendingFolder until then.
	var folderStack []string
	var pendingFolder string
	lastWasBookmark := false

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				if name := getTextContent(n); name != "" {
					pendingFolder = name
				}
				lastWasBookmark = false
				return

			case "a":
				href := strings.TrimSpace(getAttr(n, "href"))
				title := getTextContent(n)
				if href == "" {
					res.Warnings = append(res.Warnings, Warning{Reason: "anchor without href", Title: title})
					lastWasBookmark = false
					return
				}
				if title == "" {
					title = href
				}

				b := model.Bookmark{
					ID:         model.NewID(),
					URL:        href,
					Title:      title,
					Icon:       getAttr(n, "icon"),
					FolderPath: append([]string(nil), folderStack...),
				}

				if raw := getAttr(n, "add_date"); raw != "" {
					if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
						b.AddDate = time.Unix(ts, 0).UTC()
					} else {
						res.Warnings = append(res.Warnings, Warning{
							Reason: fmt.Sprintf("invalid add_date %q", raw),
							URL:    href,
						})
					}
				}
				if raw := getAttr(n, "last_modified"); raw != "" {
					if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
						b.LastModified = time.Unix(ts, 0).UTC()
					}
				}
				if raw := getAttr(n, "tags"); raw != "" {
					b.Tags = splitTags(raw)
				}

				res.Bookmarks = append(res.Bookmarks, b)
				lastWasBookmark = true
				return

			case "dd":
				// A DD directly after a bookmark carries its description.
				if lastWasBookmark && len(res.Bookmarks) > 0 {
					if text := getTextContent(n); text != "" {
						res.Bookmarks[len(res.Bookmarks)-1].Description = text
					}
					lastWasBookmark = false
				}
				// Unclosed DDs can swallow the rest of the list, so keep walking.
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return res, nil
}

// getTextContent returns the trimmed text content of a node's subtree.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
