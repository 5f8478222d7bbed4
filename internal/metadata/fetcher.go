// Package metadata fetches a URL's title, description, and keywords for
// bookmark auto-fill. The fetch is best effort: callers fall back to the
// URL's host name when it fails or comes back empty.
package metadata

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Metadata is what could be scraped from a page.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
}

// Fetcher retrieves page metadata for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Metadata, error)
}

const (
	fetchTimeout = 5 * time.Second
	maxTags      = 5
	userAgent    = "hoardbot/1.0 (+bookmark metadata fetch)"
)

var (
	titlePattern   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaPattern    = regexp.MustCompile(`(?is)<meta\s[^>]*>`)
	namePattern    = regexp.MustCompile(`(?is)(?:name|property)\s*=\s*["']([^"']+)["']`)
	contentPattern = regexp.MustCompile(`(?is)content\s*=\s*["']([^"']*)["']`)
)

type httpFetcher struct {
	client *resty.Client
	log    *slog.Logger
}

// NewFetcher creates a Fetcher backed by an HTTP client.
func NewFetcher(log *slog.Logger) Fetcher {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &httpFetcher{
		client: client,
		log:    log.With("component", "metadata_fetcher"),
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (*Metadata, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		f.log.DebugContext(ctx, "Metadata fetch failed", "url", url, "error", err)
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		f.log.DebugContext(ctx, "Metadata fetch returned error status", "url", url, "status", resp.StatusCode())
		return nil, fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode())
	}

	ct := resp.Header().Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "html") {
		return nil, fmt.Errorf("fetch %s returned non-HTML content type %q", url, ct)
	}

	return parsePage(resp.String()), nil
}

// parsePage extracts title, description, and keyword tags from an HTML page.
func parsePage(body string) *Metadata {
	md := &Metadata{}

	if m := titlePattern.FindStringSubmatch(body); m != nil {
		md.Title = cleanText(m[1])
	}

	for _, tag := range metaPattern.FindAllString(body, -1) {
		nm := namePattern.FindStringSubmatch(tag)
		cm := contentPattern.FindStringSubmatch(tag)
		if nm == nil || cm == nil {
			continue
		}
		name := strings.ToLower(nm[1])
		content := cleanText(cm[1])
		if content == "" {
			continue
		}

		switch name {
		case "description", "og:description":
			if md.Description == "" {
				md.Description = content
			}
		case "og:title":
			if md.Title == "" {
				md.Title = content
			}
		case "keywords":
			md.Tags = splitKeywords(content)
		}
	}

	return md
}

func splitKeywords(content string) []string {
	var tags []string
	for _, kw := range strings.Split(content, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		tags = append(tags, kw)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
