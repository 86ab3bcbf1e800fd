// Package scrape extracts search results and episode listings from the
// upstream content site. Fetching is shared with the rest of the
// service; parsing itself is pure and lives in parser.go.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"aniworld/internal/config"
	"aniworld/internal/httputil"
	"aniworld/internal/media"
)

// maxPageBytes bounds how much of an upstream page is parsed.
const maxPageBytes = 5 * 1024 * 1024

// Scraper fetches and parses listing pages from the content site.
type Scraper struct {
	siteBase string
	client   *http.Client
}

// New creates a Scraper from configuration. A nil client gets the
// hardened default with the configured timeout.
func New(cfg *config.Config, client *http.Client) *Scraper {
	if client == nil {
		client = httputil.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}
	return &Scraper{
		siteBase: strings.TrimRight(cfg.SiteBase, "/"),
		client:   client,
	}
}

// Search returns the result cards for a query from the site's search
// page. An unreachable or non-200 page is an error; the caller decides
// how to degrade.
func (s *Scraper) Search(ctx context.Context, query string) ([]media.SearchResult, error) {
	searchURL := fmt.Sprintf("%s/?s=%s", s.siteBase, url.QueryEscape(query))

	doc, err := s.fetchDocument(ctx, searchURL, s.siteBase+"/")
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}

	return parseSearchResults(doc), nil
}

// Episodes returns the parsed series page: canonical title plus the
// episode list.
func (s *Scraper) Episodes(ctx context.Context, seriesURL string) (media.EpisodeListing, error) {
	doc, err := s.fetchDocument(ctx, seriesURL, s.siteBase+"/")
	if err != nil {
		return media.EpisodeListing{}, fmt.Errorf("fetching series page: %w", err)
	}

	listing := parseEpisodeListing(doc)
	listing.ID = seriesURL
	return listing, nil
}

// fetchDocument fetches a URL and parses it into a goquery Document.
func (s *Scraper) fetchDocument(ctx context.Context, pageURL, referer string) (*goquery.Document, error) {
	resp, err := httputil.Get(ctx, s.client, pageURL, referer)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, nil
}
