// Package analyzer assigns category labels to bookmarks, using fixed rules
// first and text clustering for whatever the rules leave over.
package analyzer

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bmorg/internal/model"
)

const (
	// minCorpusForClustering gates clustering on overall corpus size.
	minCorpusForClustering = 10
	// minClusterCandidates is the smallest remainder worth clustering.
	minClusterCandidates = 5
	// minDocFrequency drops terms seen in fewer documents.
	minDocFrequency = 2
)

// Config tunes the clustering stage.
type Config struct {
	MaxFeatures     int     `json:"max_features"`
	ClusterEps      float64 `json:"cluster_eps"`
	ClusterMinPts   int     `json:"cluster_min_pts"`
	MinCategorySize int     `json:"min_category_size"`
}

// DefaultConfig returns the tuning the CLI uses when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		MaxFeatures:     100,
		ClusterEps:      0.6,
		ClusterMinPts:   2,
		MinCategorySize: 2,
	}
}

// Validate reports configuration values outside their usable ranges.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxFeatures, validation.Required, validation.Min(1)),
		validation.Field(&c.ClusterEps, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(2.0)),
		validation.Field(&c.ClusterMinPts, validation.Required, validation.Min(1)),
		validation.Field(&c.MinCategorySize, validation.Required, validation.Min(1)),
	)
}

// Categorize labels every distinct URL in the input. Rule matches come
// first; with a big enough corpus the still-unlabeled remainder is clustered
// over its title, description and domain text. Labels claimed by fewer than
// MinCategorySize URLs fold into Uncategorized, so the assignment always
// covers the whole input.
func Categorize(bookmarks []model.Bookmark, cfg Config) model.Assignment {
	assignment := make(model.Assignment, len(bookmarks))
	if len(bookmarks) == 0 {
		return assignment
	}

	// Duplicates share their identity, so the first entry seen for a
	// normalized URL speaks for all of them.
	keys := make([]string, 0, len(bookmarks))
	firstFor := make(map[string]model.Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		key := model.NormalizeURL(b.URL)
		if _, seen := firstFor[key]; !seen {
			firstFor[key] = b
			keys = append(keys, key)
		}
	}

	for _, key := range keys {
		if c := ruleCategory(firstFor[key]); c != "" {
			assignment[key] = c
		}
	}

	if len(bookmarks) > minCorpusForClustering {
		var rest []model.Bookmark
		var restKeys []string
		for _, key := range keys {
			if assignment[key] == "" {
				rest = append(rest, firstFor[key])
				restKeys = append(restKeys, key)
			}
		}
		if len(rest) >= minClusterCandidates {
			for i, label := range clusterLabels(rest, cfg) {
				if label != "" {
					assignment[restKeys[i]] = label
				}
			}
		}
	}

	minSize := cfg.MinCategorySize
	if minSize <= 0 {
		minSize = 1
	}
	sizes := make(map[string]int, len(assignment))
	for _, key := range keys {
		if assignment[key] == "" {
			assignment[key] = model.Uncategorized
		}
		sizes[assignment[key]]++
	}
	for _, key := range keys {
		if label := assignment[key]; label != model.Uncategorized && sizes[label] < minSize {
			assignment[key] = model.Uncategorized
		}
	}

	return assignment
}

// clusterLabels runs TF-IDF plus DBSCAN over the bookmarks and names each
// cluster. The returned slice parallels bookmarks; "" marks noise points.
func clusterLabels(bookmarks []model.Bookmark, cfg Config) []string {
	docs := make([][]string, len(bookmarks))
	for i, b := range bookmarks {
		docs[i] = clusterDoc(b)
	}

	points := newVectorizer(cfg.MaxFeatures, minDocFrequency).fitTransform(docs)

	eps := cfg.ClusterEps
	if eps <= 0 {
		eps = DefaultConfig().ClusterEps
	}
	minPts := cfg.ClusterMinPts
	if minPts <= 0 {
		minPts = DefaultConfig().ClusterMinPts
	}

	ids := dbscan(points, eps, minPts)

	members := make(map[int][]model.Bookmark)
	for i, id := range ids {
		if id >= 0 {
			members[id] = append(members[id], bookmarks[i])
		}
	}
	names := make(map[int]string, len(members))
	for id, list := range members {
		names[id] = clusterName(list)
	}

	labels := make([]string, len(bookmarks))
	for i, id := range ids {
		if id >= 0 {
			labels[i] = names[id]
		}
	}
	return labels
}

// clusterDoc is the text the clusterer sees for one bookmark.
func clusterDoc(b model.Bookmark) []string {
	return tokenize(b.Title + " " + b.Description + " " + b.Domain())
}

// clusterName derives a display label: recurring title words when the
// cluster has them, else its dominant domain, else a generic fallback.
func clusterName(members []model.Bookmark) string {
	wordCounts := make(map[string]int)
	var wordOrder []string
	domainCounts := make(map[string]int)
	var domainOrder []string

	for _, b := range members {
		for _, tok := range tokenize(b.Title) {
			if wordCounts[tok] == 0 {
				wordOrder = append(wordOrder, tok)
			}
			wordCounts[tok]++
		}
		if d := b.Domain(); d != "" {
			if domainCounts[d] == 0 {
				domainOrder = append(domainOrder, d)
			}
			domainCounts[d]++
		}
	}

	// Ties keep first-seen order.
	sort.SliceStable(wordOrder, func(i, j int) bool {
		return wordCounts[wordOrder[i]] > wordCounts[wordOrder[j]]
	})

	top := wordOrder
	if len(top) > 3 {
		top = top[:3]
	}
	var common []string
	for _, w := range top {
		if wordCounts[w] > 1 && len(w) > 3 {
			common = append(common, w)
		}
	}
	if len(common) > 0 {
		return titleCase(strings.Join(common, " "))
	}

	if len(domainOrder) > 0 {
		sort.SliceStable(domainOrder, func(i, j int) bool {
			return domainCounts[domainOrder[i]] > domainCounts[domainOrder[j]]
		})
		return titleCase(strings.Split(domainOrder[0], ".")[0]) + " Resources"
	}

	return "Related Resources"
}
