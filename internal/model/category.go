package model

// Uncategorized is the fallback category for bookmarks no rule or cluster claims.
const Uncategorized = "Uncategorized"

// Assignment maps normalized URLs to category labels.
type Assignment map[string]string

// Category returns the label assigned to the bookmark, or Uncategorized.
func (a Assignment) Category(b Bookmark) string {
	if label, ok := a[NormalizeURL(b.URL)]; ok && label != "" {
		return label
	}
	return Uncategorized
}
