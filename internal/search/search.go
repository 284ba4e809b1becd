// Package search finds bookmarks by fuzzy title matching.
package search

import (
	"github.com/sahilm/fuzzy"

	"bmorg/internal/model"
)

// Result represents a single fuzzy match.
type Result struct {
	Bookmark       model.Bookmark `json:"bookmark"`
	MatchedIndexes []int          `json:"matched_indexes,omitempty"`
	Score          int            `json:"score"`
}

// titles implements fuzzy.Source over a bookmark slice.
type titles []model.Bookmark

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// Bookmarks matches the query against bookmark titles and returns matches
// sorted by score, best first. An empty query matches nothing.
func Bookmarks(bookmarks []model.Bookmark, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, titles(bookmarks))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
