package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"bmorg/internal/model"
)

// Report summarizes a validation run over one bookmark file.
type Report struct {
	Version     string        `json:"version"`
	GeneratedAt time.Time     `json:"generated_at"`
	Source      string        `json:"source"`
	Total       int           `json:"total_bookmarks"`
	CheckedURLs int           `json:"checked_urls"`
	Alive       int           `json:"alive"`
	Dead        int           `json:"dead"`
	Unknown     int           `json:"unknown"`
	Problems    []ReportLink  `json:"problem_links,omitempty"`
	Duplicates  []ReportGroup `json:"duplicate_groups,omitempty"`
}

// ReportLink describes one bookmark whose URL did not check out alive.
type ReportLink struct {
	URL        string `json:"url"`
	Title      string `json:"title,omitempty"`
	Status     string `json:"status"`
	HTTPStatus int    `json:"http_status,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// ReportGroup lists one set of bookmarks sharing a normalized URL.
type ReportGroup struct {
	URL         string           `json:"url"`
	Count       int              `json:"count"`
	CanonicalID string           `json:"canonical_id"`
	Bookmarks   []model.Bookmark `json:"bookmarks"`
}

// BuildReport assembles the validation report. Liveness counts are per
// checked URL; problem links are listed per bookmark in input order, so two
// entries pointing at the same dead URL both show up.
func BuildReport(source string, bookmarks []model.Bookmark, checks map[string]model.CheckResult, groups []model.DuplicateGroup) Report {
	report := Report{
		Version:     "1",
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Total:       len(bookmarks),
		CheckedURLs: len(checks),
	}

	for _, res := range checks {
		switch res.Status {
		case model.StatusAlive:
			report.Alive++
		case model.StatusDead:
			report.Dead++
		default:
			report.Unknown++
		}
	}

	for _, b := range bookmarks {
		res, ok := checks[model.NormalizeURL(b.URL)]
		if !ok || res.Status == model.StatusAlive {
			continue
		}
		report.Problems = append(report.Problems, ReportLink{
			URL:        b.URL,
			Title:      b.Title,
			Status:     res.Status.String(),
			HTTPStatus: res.HTTPStatus,
			Reason:     res.Reason,
		})
	}

	for _, g := range groups {
		report.Duplicates = append(report.Duplicates, ReportGroup{
			URL:         g.Key,
			Count:       len(g.Bookmarks),
			CanonicalID: g.Canonical().ID,
			Bookmarks:   g.Bookmarks,
		})
	}

	return report
}

// WriteReport renders the report as an indented JSON document.
func WriteReport(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
