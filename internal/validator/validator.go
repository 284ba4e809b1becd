// Package validator checks bookmark liveness and finds duplicate entries.
package validator

import (
	"context"
	"sync"

	"bmorg/internal/logger"
	"bmorg/internal/model"
)

// DefaultConcurrency bounds the probe worker pool.
const DefaultConcurrency = 10

// Prober reports the liveness of a single URL.
type Prober interface {
	Probe(ctx context.Context, url string) model.CheckResult
}

// ProbeFunc adapts a function to the Prober interface.
type ProbeFunc func(ctx context.Context, url string) model.CheckResult

// Probe calls f.
func (f ProbeFunc) Probe(ctx context.Context, url string) model.CheckResult {
	return f(ctx, url)
}

// ProgressFunc is called after each distinct URL is probed. completed counts
// probed URLs so far, total is the number of distinct URLs.
type ProgressFunc func(completed, total int)

// Options control a CheckLinks run.
type Options struct {
	Concurrency int
	Progress    ProgressFunc
	// Logger receives a debug line per probed URL. Nil means no logging.
	Logger logger.Logger
}

// CheckLinks probes every distinct normalized URL once and fans the verdict
// out to all bookmarks sharing it. The returned map is keyed by normalized
// URL. Cancelling ctx stops probing; URLs not yet probed come back Unknown.
func CheckLinks(ctx context.Context, bookmarks []model.Bookmark, prober Prober, opts Options) map[string]model.CheckResult {
	if len(bookmarks) == 0 {
		return map[string]model.CheckResult{}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	// One probe per distinct normalized URL. The first raw URL seen for a
	// key is the representative actually requested.
	keys := make([]string, 0, len(bookmarks))
	reps := make(map[string]string, len(bookmarks))
	for _, b := range bookmarks {
		key := model.NormalizeURL(b.URL)
		if _, seen := reps[key]; !seen {
			reps[key] = b.URL
			keys = append(keys, key)
		}
	}

	if concurrency > len(keys) {
		concurrency = len(keys)
	}
	log.Debug("checking links",
		logger.Int("urls", len(keys)),
		logger.Int("concurrency", concurrency))

	results := make([]model.CheckResult, len(keys))
	jobs := make(chan int, len(keys))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = model.CheckResult{Status: model.StatusUnknown, Reason: "cancelled"}
				} else {
					res := prober.Probe(ctx, reps[keys[idx]])
					results[idx] = res
					log.Debug("probed url",
						logger.String("url", reps[keys[idx]]),
						logger.String("status", res.Status.String()),
						logger.String("reason", res.Reason))
				}

				if opts.Progress != nil {
					progressMu.Lock()
					completed++
					opts.Progress(completed, len(keys))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range keys {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := make(map[string]model.CheckResult, len(keys))
	for i, key := range keys {
		out[key] = results[i]
	}
	return out
}

// FindDuplicates groups bookmarks sharing a normalized URL. Groups keep
// first-encounter order; only sets with at least two entries are returned.
func FindDuplicates(bookmarks []model.Bookmark) []model.DuplicateGroup {
	byKey := make(map[string][]model.Bookmark)
	var order []string
	for _, b := range bookmarks {
		key := model.NormalizeURL(b.URL)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], b)
	}

	var groups []model.DuplicateGroup
	for _, key := range order {
		if members := byKey[key]; len(members) >= 2 {
			groups = append(groups, model.DuplicateGroup{Key: key, Bookmarks: members})
		}
	}
	return groups
}
