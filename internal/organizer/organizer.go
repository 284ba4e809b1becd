// Package organizer builds the output folder tree from labeled bookmarks.
package organizer

import (
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bmorg/internal/model"
)

// DefaultMaxPerFolder caps folder size before subfolder splitting kicks in.
const DefaultMaxPerFolder = 50

// Options control tree building.
type Options struct {
	MaxPerFolder    int
	RemoveBroken    bool
	MergeDuplicates bool
}

// DefaultOptions returns the CLI defaults.
func DefaultOptions() Options {
	return Options{MaxPerFolder: DefaultMaxPerFolder}
}

// Validate reports option values outside their usable ranges.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.MaxPerFolder, validation.Required, validation.Min(1)),
	)
}

// Organize partitions bookmarks into one folder per category label and sorts
// the result. With RemoveBroken set, entries whose liveness check came back
// Dead are dropped first. With MergeDuplicates set, each duplicate group
// keeps only its canonical entry, placed where the group first appeared.
// Folders over MaxPerFolder split into subfolders by domain, TLD or title
// initial, in that order of preference.
func Organize(bookmarks []model.Bookmark, assignment model.Assignment, groups []model.DuplicateGroup, checks map[string]model.CheckResult, opts Options) *model.FolderNode {
	maxPer := opts.MaxPerFolder
	if maxPer <= 0 {
		maxPer = DefaultMaxPerFolder
	}

	kept := bookmarks
	if opts.RemoveBroken && len(checks) > 0 {
		kept = removeBroken(kept, checks)
	}
	if opts.MergeDuplicates && len(groups) > 0 {
		kept = mergeDuplicates(kept, groups)
	}

	byLabel := make(map[string][]model.Bookmark)
	var labels []string
	for _, b := range kept {
		label := assignment.Category(b)
		if _, seen := byLabel[label]; !seen {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], b)
	}

	root := model.NewRoot()
	for _, label := range labels {
		folder := root.Child(label)
		members := byLabel[label]
		if len(members) > maxPer {
			for _, sub := range splitFolder(members, maxPer) {
				child := folder.Child(sub.name)
				child.Bookmarks = append(child.Bookmarks, sub.members...)
			}
		} else {
			folder.Bookmarks = append(folder.Bookmarks, members...)
		}
	}

	root.SortRecursive()
	return root
}

// removeBroken drops bookmarks whose check said Dead. Alive and Unknown stay.
func removeBroken(bookmarks []model.Bookmark, checks map[string]model.CheckResult) []model.Bookmark {
	kept := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if res, ok := checks[model.NormalizeURL(b.URL)]; ok && res.Status == model.StatusDead {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// mergeDuplicates collapses each reported group to its canonical bookmark.
// The survivor takes the slot of the group's first occurrence in the input;
// bookmarks outside any group pass through untouched.
func mergeDuplicates(bookmarks []model.Bookmark, groups []model.DuplicateGroup) []model.Bookmark {
	canonical := make(map[string]model.Bookmark, len(groups))
	for _, g := range groups {
		canonical[g.Key] = g.Canonical()
	}

	merged := make([]model.Bookmark, 0, len(bookmarks))
	emitted := make(map[string]bool, len(canonical))
	for _, b := range bookmarks {
		key := model.NormalizeURL(b.URL)
		keep, isDup := canonical[key]
		if !isDup {
			merged = append(merged, b)
			continue
		}
		if !emitted[key] {
			emitted[key] = true
			merged = append(merged, keep)
		}
	}
	return merged
}

type subfolder struct {
	name    string
	members []model.Bookmark
}

// splitFolder breaks an oversized member list into named subgroups: by
// domain when that yields 2 to 10 groups, else by TLD when that lands in
// 2 to 10, else by ranges of the title's first character.
func splitFolder(members []model.Bookmark, maxPer int) []subfolder {
	domains := make(map[string][]model.Bookmark)
	var domainOrder []string
	for _, b := range members {
		d := b.Domain()
		if d == "" {
			d = "other"
		}
		if _, seen := domains[d]; !seen {
			domainOrder = append(domainOrder, d)
		}
		domains[d] = append(domains[d], b)
	}

	if len(domains) >= 2 && len(domains) <= 10 {
		subs := make([]subfolder, 0, len(domains))
		for _, d := range domainOrder {
			subs = append(subs, subfolder{name: domainFolderName(d), members: domains[d]})
		}
		return subs
	}

	if len(domains) > 10 {
		tlds := make(map[string][]model.Bookmark)
		var tldOrder []string
		for _, d := range domainOrder {
			tld := "other"
			if i := strings.LastIndex(d, "."); i >= 0 && i+1 < len(d) {
				tld = d[i+1:]
			}
			if _, seen := tlds[tld]; !seen {
				tldOrder = append(tldOrder, tld)
			}
			tlds[tld] = append(tlds[tld], domains[d]...)
		}
		if len(tlds) >= 2 && len(tlds) <= 10 {
			subs := make([]subfolder, 0, len(tlds))
			for _, tld := range tldOrder {
				subs = append(subs, subfolder{name: strings.ToUpper(tld) + " Sites", members: tlds[tld]})
			}
			return subs
		}
	}

	return splitByInitial(members, maxPer)
}

// domainFolderName turns "github.com" into "Github".
func domainFolderName(domain string) string {
	name := domain
	if i := strings.Index(domain, "."); i > 0 {
		name = domain[:i]
	}
	if name == "" {
		return "Other"
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// splitByInitial groups members by the first character of their title, then
// greedily packs adjacent letter groups into ranges no bigger than maxPer.
// Titles not starting with a letter collect under "#".
func splitByInitial(members []model.Bookmark, maxPer int) []subfolder {
	byLetter := make(map[string][]model.Bookmark)
	for _, b := range members {
		letter := "#"
		if title := strings.TrimSpace(b.Title); title != "" {
			r := []rune(strings.ToUpper(title))[0]
			if unicode.IsLetter(r) {
				letter = string(r)
			}
		}
		byLetter[letter] = append(byLetter[letter], b)
	}

	letters := make([]string, 0, len(byLetter))
	for l := range byLetter {
		letters = append(letters, l)
	}
	sort.Strings(letters)

	var subs []subfolder
	var current []model.Bookmark
	var first, last string

	flush := func() {
		if len(current) == 0 {
			return
		}
		name := first
		if last != first {
			name = first + "-" + last
		}
		subs = append(subs, subfolder{name: name, members: current})
		current = nil
	}

	for _, l := range letters {
		group := byLetter[l]
		if len(current) > 0 && len(current)+len(group) > maxPer {
			flush()
		}
		if len(current) == 0 {
			first = l
		}
		last = l
		current = append(current, group...)
	}
	flush()

	return subs
}
