package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bmorg/internal/model"
)

// DefaultTimeout bounds each probe request.
const DefaultTimeout = 5 * time.Second

// DefaultUserAgent identifies probe requests to remote servers.
const DefaultUserAgent = "bmorg/1.0 (+bookmark link checker)"

// HTTPProber probes URLs over HTTP with a shared client.
type HTTPProber struct {
	client    *http.Client
	userAgent string
	exclude   map[string]bool
}

// NewHTTPProber returns a Prober backed by a single HTTP client. Redirects
// are followed up to 10 deep; the response in hand at the cap is classified
// as-is. 404s on excluded domains are reported Unknown instead of Dead since
// those hosts answer 404 for private pages.
func NewHTTPProber(timeout time.Duration, userAgent string, excludeDomains []string) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	exclude := make(map[string]bool, len(excludeDomains))
	for _, d := range excludeDomains {
		exclude[strings.ToLower(d)] = true
	}
	return &HTTPProber{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		userAgent: userAgent,
		exclude:   exclude,
	}
}

// Probe checks a single URL. HEAD goes first; servers that reject HEAD get a
// GET retry. Transport failures come back Unknown, HTTP error statuses Dead.
func (p *HTTPProber) Probe(ctx context.Context, rawURL string) model.CheckResult {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return model.CheckResult{Status: model.StatusUnknown, Reason: "not a valid URL"}
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		if scheme == "" {
			return model.CheckResult{Status: model.StatusUnknown, Reason: "not a valid URL"}
		}
		return model.CheckResult{Status: model.StatusUnknown, Reason: "unsupported scheme " + scheme}
	}

	resp, err := p.do(ctx, http.MethodHead, rawURL)
	if err == nil && headRejected(resp.StatusCode) {
		resp.Body.Close()
		resp, err = p.do(ctx, http.MethodGet, rawURL)
	} else if err != nil && ctx.Err() == nil {
		resp, err = p.do(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		if ctx.Err() != nil {
			return model.CheckResult{Status: model.StatusUnknown, Reason: "cancelled"}
		}
		return model.CheckResult{Status: model.StatusUnknown, Reason: normalizeError(err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 400:
		return model.CheckResult{Status: model.StatusAlive, HTTPStatus: resp.StatusCode}
	case (resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone) && p.isExcluded(u.Hostname()):
		return model.CheckResult{
			Status:     model.StatusUnknown,
			HTTPStatus: resp.StatusCode,
			Reason:     "possibly private (auth required)",
		}
	default:
		return model.CheckResult{
			Status:     model.StatusDead,
			HTTPStatus: resp.StatusCode,
			Reason:     fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}
}

func (p *HTTPProber) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)
	return p.client.Do(req)
}

// headRejected reports statuses where a GET retry is worth it: some servers
// answer HEAD with 403/404/405 yet serve the page normally.
func headRejected(status int) bool {
	switch status {
	case http.StatusForbidden, http.StatusNotFound, http.StatusMethodNotAllowed:
		return true
	}
	return false
}

// isExcluded matches the host exactly or as a subdomain of an excluded domain.
func (p *HTTPProber) isExcluded(host string) bool {
	host = strings.ToLower(host)
	if p.exclude[host] {
		return true
	}
	for domain := range p.exclude {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose transport errors into short categories.
func normalizeError(err error) string {
	lower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context canceled"):
		return "cancelled"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "timeout"
	case strings.Contains(lower, "connection refused"):
		return "connection refused"
	case strings.Contains(lower, "certificate"),
		strings.Contains(lower, "tls:"):
		return "TLS error"
	case strings.Contains(lower, "network is unreachable"):
		return "network unreachable"
	default:
		return err.Error()
	}
}
