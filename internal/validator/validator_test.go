package validator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bmorg/internal/model"
)

func setupProbeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/head-shy", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProber_Statuses(t *testing.T) {
	srv := setupProbeServer(t)
	prober := NewHTTPProber(2*time.Second, "", nil)

	tests := []struct {
		path       string
		wantStatus model.Status
		wantHTTP   int
	}{
		{"/ok", model.StatusAlive, http.StatusOK},
		{"/missing", model.StatusDead, http.StatusNotFound},
		{"/broken", model.StatusDead, http.StatusInternalServerError},
		{"/head-shy", model.StatusAlive, http.StatusOK},
		{"/redirect", model.StatusAlive, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := prober.Probe(context.Background(), srv.URL+tt.path)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v (reason %q)", got.Status, tt.wantStatus, got.Reason)
			}
			if got.HTTPStatus != tt.wantHTTP {
				t.Errorf("http status = %d, want %d", got.HTTPStatus, tt.wantHTTP)
			}
		})
	}
}

func TestHTTPProber_DeadReasonNamesStatus(t *testing.T) {
	srv := setupProbeServer(t)
	prober := NewHTTPProber(2*time.Second, "", nil)

	got := prober.Probe(context.Background(), srv.URL+"/missing")
	if got.Reason != "HTTP 404 Not Found" {
		t.Errorf("reason = %q", got.Reason)
	}
}

func TestHTTPProber_ExcludedDomain(t *testing.T) {
	srv := setupProbeServer(t)
	prober := NewHTTPProber(2*time.Second, "", []string{"127.0.0.1"})

	got := prober.Probe(context.Background(), srv.URL+"/missing")
	if got.Status != model.StatusUnknown {
		t.Errorf("status = %v, want Unknown", got.Status)
	}
	if got.Reason != "possibly private (auth required)" {
		t.Errorf("reason = %q", got.Reason)
	}

	// Other HTTP failures on the excluded host stay Dead.
	if got := prober.Probe(context.Background(), srv.URL+"/broken"); got.Status != model.StatusDead {
		t.Errorf("500 on excluded host = %v, want Dead", got.Status)
	}
}

func TestHTTPProber_UnsupportedScheme(t *testing.T) {
	prober := NewHTTPProber(time.Second, "", nil)

	tests := []struct {
		url        string
		wantReason string
	}{
		{"mailto:me@example.com", "unsupported scheme mailto"},
		{"javascript:void(0)", "unsupported scheme javascript"},
		{"ftp://files.example.com", "unsupported scheme ftp"},
	}
	for _, tt := range tests {
		got := prober.Probe(context.Background(), tt.url)
		if got.Status != model.StatusUnknown {
			t.Errorf("%s: status = %v, want Unknown", tt.url, got.Status)
		}
		if got.Reason != tt.wantReason {
			t.Errorf("%s: reason = %q, want %q", tt.url, got.Reason, tt.wantReason)
		}
	}
}

func TestHTTPProber_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	prober := NewHTTPProber(time.Second, "", nil)
	got := prober.Probe(context.Background(), url)
	if got.Status != model.StatusUnknown {
		t.Errorf("status = %v, want Unknown", got.Status)
	}
	if got.Reason != "connection refused" {
		t.Errorf("reason = %q, want connection refused", got.Reason)
	}
}

func TestHTTPProber_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := NewHTTPProber(time.Second, "", nil)
	got := prober.Probe(ctx, "http://example.com")
	if got.Status != model.StatusUnknown || got.Reason != "cancelled" {
		t.Errorf("got %+v, want Unknown/cancelled", got)
	}
}

func TestHTTPProber_UserAgentSent(t *testing.T) {
	var mu sync.Mutex
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = r.Header.Get("User-Agent")
		mu.Unlock()
	}))
	t.Cleanup(srv.Close)

	prober := NewHTTPProber(time.Second, "custom-agent/2.0", nil)
	prober.Probe(context.Background(), srv.URL)

	mu.Lock()
	defer mu.Unlock()
	if seen != "custom-agent/2.0" {
		t.Errorf("user agent = %q", seen)
	}
}

func TestCheckLinks_DeduplicatesProbes(t *testing.T) {
	var mu sync.Mutex
	calls := make(map[string]int)
	fake := ProbeFunc(func(ctx context.Context, url string) model.CheckResult {
		mu.Lock()
		calls[url]++
		mu.Unlock()
		return model.CheckResult{Status: model.StatusAlive, HTTPStatus: 200}
	})

	bookmarks := []model.Bookmark{
		{URL: "http://a.com/"},
		{URL: "http://a.com/?"},
		{URL: "https://www.a.com"},
		{URL: "https://b.com"},
	}

	results := CheckLinks(context.Background(), bookmarks, fake, Options{Concurrency: 4})

	if len(results) != 2 {
		t.Fatalf("expected 2 distinct results, got %d", len(results))
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 {
		t.Errorf("expected 2 probe calls, got %d: %v", len(calls), calls)
	}
	// The representative is the first raw URL seen for the key.
	if calls["http://a.com/"] != 1 {
		t.Errorf("expected the first raw URL to be probed, got calls %v", calls)
	}
}

func TestCheckLinks_ResultsKeyedByNormalizedURL(t *testing.T) {
	fake := ProbeFunc(func(ctx context.Context, url string) model.CheckResult {
		if url == "https://dead.example.com" {
			return model.CheckResult{Status: model.StatusDead, HTTPStatus: 404, Reason: "HTTP 404 Not Found"}
		}
		return model.CheckResult{Status: model.StatusAlive, HTTPStatus: 200}
	})

	bookmarks := []model.Bookmark{
		{URL: "https://alive.example.com"},
		{URL: "https://dead.example.com"},
	}

	results := CheckLinks(context.Background(), bookmarks, fake, Options{})

	if got := results[model.NormalizeURL("https://alive.example.com")]; got.Status != model.StatusAlive {
		t.Errorf("alive entry = %+v", got)
	}
	if got := results[model.NormalizeURL("https://dead.example.com")]; got.Status != model.StatusDead {
		t.Errorf("dead entry = %+v", got)
	}
}

func TestCheckLinks_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := ProbeFunc(func(ctx context.Context, url string) model.CheckResult {
		t.Error("prober should not run once the context is cancelled")
		return model.CheckResult{}
	})

	bookmarks := []model.Bookmark{
		{URL: "https://a.com"},
		{URL: "https://b.com"},
	}

	results := CheckLinks(ctx, bookmarks, fake, Options{Concurrency: 2})

	for key, res := range results {
		if res.Status != model.StatusUnknown || res.Reason != "cancelled" {
			t.Errorf("%s = %+v, want Unknown/cancelled", key, res)
		}
	}
}

func TestCheckLinks_ReportsProgress(t *testing.T) {
	fake := ProbeFunc(func(ctx context.Context, url string) model.CheckResult {
		return model.CheckResult{Status: model.StatusAlive}
	})

	bookmarks := []model.Bookmark{
		{URL: "https://a.com"},
		{URL: "https://b.com"},
		{URL: "https://c.com"},
	}

	var mu sync.Mutex
	var ticks []int
	CheckLinks(context.Background(), bookmarks, fake, Options{
		Concurrency: 2,
		Progress: func(completed, total int) {
			mu.Lock()
			defer mu.Unlock()
			if total != 3 {
				t.Errorf("total = %d, want 3", total)
			}
			ticks = append(ticks, completed)
		},
	})

	mu.Lock()
	defer mu.Unlock()
	if len(ticks) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(ticks))
	}
	for i, c := range ticks {
		if c != i+1 {
			t.Errorf("progress tick %d = %d, want %d", i, c, i+1)
		}
	}
}

func TestCheckLinks_EmptyInput(t *testing.T) {
	results := CheckLinks(context.Background(), nil, ProbeFunc(func(ctx context.Context, url string) model.CheckResult {
		return model.CheckResult{}
	}), Options{})
	if len(results) != 0 {
		t.Errorf("expected empty result map, got %v", results)
	}
}

func TestCheckLinks_WithHTTPProber(t *testing.T) {
	srv := setupProbeServer(t)
	prober := NewHTTPProber(2*time.Second, "", nil)

	bookmarks := []model.Bookmark{
		{URL: srv.URL + "/ok"},
		{URL: srv.URL + "/missing"},
		{URL: srv.URL + "/ok?utm_source=feed"},
	}

	results := CheckLinks(context.Background(), bookmarks, prober, Options{Concurrency: 2})

	if len(results) != 2 {
		t.Fatalf("expected 2 distinct results, got %d", len(results))
	}
	if got := results[model.NormalizeURL(srv.URL+"/ok")]; got.Status != model.StatusAlive {
		t.Errorf("/ok = %+v", got)
	}
	if got := results[model.NormalizeURL(srv.URL+"/missing")]; got.Status != model.StatusDead {
		t.Errorf("/missing = %+v", got)
	}
}

func TestFindDuplicates(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "1", URL: "http://a.com/"},
		{ID: "2", URL: "https://unique.example.com"},
		{ID: "3", URL: "http://a.com/?"},
		{ID: "4", URL: "https://b.com?utm_source=x"},
		{ID: "5", URL: "https://b.com"},
		{ID: "6", URL: "https://www.a.com"},
	}

	groups := FindDuplicates(bookmarks)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// First-encounter order: a.com's group before b.com's.
	if len(groups[0].Bookmarks) != 3 {
		t.Errorf("first group size = %d, want 3", len(groups[0].Bookmarks))
	}
	if groups[0].Bookmarks[0].ID != "1" {
		t.Errorf("first group leader = %s, want 1", groups[0].Bookmarks[0].ID)
	}
	if len(groups[1].Bookmarks) != 2 {
		t.Errorf("second group size = %d, want 2", len(groups[1].Bookmarks))
	}
}

func TestFindDuplicates_NoneFound(t *testing.T) {
	bookmarks := []model.Bookmark{
		{URL: "https://a.com"},
		{URL: "https://b.com"},
	}
	if groups := FindDuplicates(bookmarks); len(groups) != 0 {
		t.Errorf("expected no groups, got %v", groups)
	}
}
