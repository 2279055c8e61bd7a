package competitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxEnrichBodyBytes caps how much of a competitor page we read for metadata.
const maxEnrichBodyBytes = 512 * 1024

// Metadata is what enrichment extracts from a competitor's website.
type Metadata struct {
	Title       string
	Description string
}

// Enricher fills in name and description for manually added competitors from
// their website's HTML metadata. Strictly best effort: callers ignore errors.
type Enricher struct {
	client *http.Client
}

// NewEnricher creates an enricher with a bounded fetch timeout.
func NewEnricher(timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Enricher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the page and extracts title and description metadata.
func (e *Enricher) Fetch(ctx context.Context, website string) (Metadata, error) {
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "https://" + website
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, website, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := e.client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetching %s: %w", website, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("fetching %s: status %d", website, resp.StatusCode)
	}

	return ParseMetadata(io.LimitReader(resp.Body, maxEnrichBodyBytes))
}

// ParseMetadata extracts title and description from an HTML document.
func ParseMetadata(r io.Reader) (Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing html: %w", err)
	}

	var meta Metadata
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = strings.TrimSpace(v)
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if v, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		meta.Description = strings.TrimSpace(v)
	}
	if meta.Description == "" {
		if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
			meta.Description = strings.TrimSpace(v)
		}
	}

	return meta, nil
}
