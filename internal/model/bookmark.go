// Package model defines the bookmark data types shared across the pipeline.
package model

import (
	"net/url"
	"strings"
	"time"
)

// Bookmark represents a single entry parsed from a bookmark file.
type Bookmark struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	AddDate      time.Time `json:"add_date"`
	LastModified time.Time `json:"last_modified"`
	FolderPath   []string  `json:"folder_path,omitempty"`
}

// Domain returns the host of the bookmark's URL, lowercased, without the
// port and without a leading "www.". It returns "" when the URL has no
// parseable host.
func (b Bookmark) Domain() string {
	u, err := url.Parse(strings.TrimSpace(b.URL))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
