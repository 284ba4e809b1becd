package model

// Status classifies the outcome of probing a bookmark's URL.
type Status int

const (
	// StatusAlive means the URL answered with a successful HTTP status.
	StatusAlive Status = iota
	// StatusDead means the URL answered with a definitive error status.
	StatusDead
	// StatusUnknown means the URL could not be conclusively checked.
	StatusUnknown
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusAlive:
		return "alive"
	case StatusDead:
		return "dead"
	case StatusUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// CheckResult records the outcome of probing a single URL.
type CheckResult struct {
	Status     Status
	HTTPStatus int
	Reason     string
}

// DuplicateGroup collects bookmarks whose URLs normalize to the same key.
type DuplicateGroup struct {
	Key       string
	Bookmarks []Bookmark
}

// Canonical picks the group's surviving entry: the bookmark with the
// earliest non-zero AddDate, falling back to the first encountered when no
// entry carries a date. Ties keep the earlier entry.
func (g DuplicateGroup) Canonical() Bookmark {
	best := g.Bookmarks[0]
	for _, b := range g.Bookmarks[1:] {
		if best.AddDate.IsZero() {
			if !b.AddDate.IsZero() {
				best = b
			}
			continue
		}
		if !b.AddDate.IsZero() && b.AddDate.Before(best.AddDate) {
			best = b
		}
	}
	return best
}
