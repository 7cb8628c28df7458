// ABOUTME: Target fetching for website ingestion
// ABOUTME: Treats http(s) URLs as network fetches and everything else as files
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

var httpTargetRe = regexp.MustCompile(`(?i)^https?://`)

// IsURL reports whether a website target is a network URL rather than a
// local file path.
func IsURL(target string) bool {
	return httpTargetRe.MatchString(target)
}

// Fetcher retrieves raw page markup for website targets.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 30 * time.Second}}
}

// FetchAsText returns the body of a target: an HTTP GET for URLs, a file
// read otherwise. Non-2xx responses are errors.
func (f *Fetcher) FetchAsText(ctx context.Context, target string) (string, error) {
	if !IsURL(target) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %w", target, err)
		}
		data, err := os.ReadFile(target)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", target, err)
		}
		return string(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", target, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %s: HTTP %d %s", target, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body of %s: %w", target, err)
	}
	return string(body), nil
}

// CanonicalBase derives the base URL used for section anchors: the target
// itself for network targets (sans trailing slash), the site's public URL
// for local files.
func CanonicalBase(target, siteURL string) string {
	base := siteURL
	if IsURL(target) {
		base = target
	}
	return strings.TrimSuffix(base, "/")
}
