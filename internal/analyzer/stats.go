package analyzer

import (
	"sort"
	"strings"

	"bmorg/internal/model"
)

// topDomainLimit caps the domain table in Stats.
const topDomainLimit = 20

// Stats summarizes a parsed bookmark collection.
type Stats struct {
	TotalBookmarks int           `json:"total_bookmarks"`
	TotalFolders   int           `json:"total_folders"`
	AvgFolderDepth float64       `json:"avg_folder_depth"`
	TopDomains     []DomainCount `json:"top_domains"`
	ByMonth        []MonthCount  `json:"by_month"`
}

// DomainCount pairs a domain with how many bookmarks point at it.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// MonthCount pairs a YYYY-MM month with how many bookmarks were added then.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Summarize computes collection statistics over the flat bookmark list.
// Domains are ranked by count with alphabetical tiebreak; months sort
// chronologically. Entries without an AddDate stay out of the month table.
func Summarize(bookmarks []model.Bookmark) Stats {
	s := Stats{TotalBookmarks: len(bookmarks)}

	domains := make(map[string]int)
	months := make(map[string]int)
	folders := make(map[string]bool)
	var depthSum int

	for _, b := range bookmarks {
		if d := b.Domain(); d != "" {
			domains[d]++
		}
		if !b.AddDate.IsZero() {
			months[b.AddDate.UTC().Format("2006-01")]++
		}
		depthSum += len(b.FolderPath)
		for i := range b.FolderPath {
			folders[strings.Join(b.FolderPath[:i+1], "/")] = true
		}
	}

	s.TotalFolders = len(folders)
	if len(bookmarks) > 0 {
		s.AvgFolderDepth = float64(depthSum) / float64(len(bookmarks))
	}

	for d, c := range domains {
		s.TopDomains = append(s.TopDomains, DomainCount{Domain: d, Count: c})
	}
	sort.Slice(s.TopDomains, func(i, j int) bool {
		if s.TopDomains[i].Count != s.TopDomains[j].Count {
			return s.TopDomains[i].Count > s.TopDomains[j].Count
		}
		return s.TopDomains[i].Domain < s.TopDomains[j].Domain
	})
	if len(s.TopDomains) > topDomainLimit {
		s.TopDomains = s.TopDomains[:topDomainLimit]
	}

	for m, c := range months {
		s.ByMonth = append(s.ByMonth, MonthCount{Month: m, Count: c})
	}
	sort.Slice(s.ByMonth, func(i, j int) bool {
		return s.ByMonth[i].Month < s.ByMonth[j].Month
	})

	return s
}
