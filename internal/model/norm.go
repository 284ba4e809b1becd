package model

import (
	"net/url"
	"strings"
)

// trackingParams are query parameters stripped during URL normalization.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"fbclid":       true,
	"gclid":        true,
	"ref":          true,
	"ref_src":      true,
	"ref_url":      true,
	"source":       true,
	"_ga":          true,
}

// NormalizeURL reduces a URL to the canonical form used as its identity for
// duplicate detection. The scheme collapses to https, the host is lowercased
// with any leading "www." removed, trailing path slashes and the fragment are
// dropped, tracking parameters are stripped and the remaining query is sorted.
// Non-HTTP URLs normalize to their trimmed raw form.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return trimmed
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.TrimRight(u.Path, "/")

	query := u.Query()
	if isVideoHost(host) {
		// Video pages are identified by their video ID alone.
		v := query.Get("v")
		query = url.Values{}
		if v != "" {
			query.Set("v", v)
		}
	} else {
		for param := range query {
			if trackingParams[param] {
				query.Del(param)
			}
		}
	}

	normalized := "https://" + host + path
	if encoded := query.Encode(); encoded != "" {
		normalized += "?" + encoded
	}
	return normalized
}

func isVideoHost(host string) bool {
	return host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") || host == "youtu.be"
}
