// Package resolve recovers the 32-hex content identifier embedded in
// upstream player pages. An ordered list of fetch strategies is
// evaluated in sequence with short-circuit on the first hit; every
// failure class is absorbed into the tagged Result, never returned as
// an error.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"aniworld/internal/config"
	"aniworld/internal/httputil"
)

// maxPageBytes bounds how much of an upstream page is parsed.
const maxPageBytes = 5 * 1024 * 1024

// Status classifies the outcome of a resolution run.
type Status int

const (
	// StatusFound means an identifier was recovered.
	StatusFound Status = iota
	// StatusNotFound means every strategy fetched cleanly but no
	// identifier was present.
	StatusNotFound
	// StatusUpstreamError means at least one strategy failed to fetch
	// or parse and no identifier was recovered.
	StatusUpstreamError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusUpstreamError:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// Attempt records one strategy evaluation for diagnostics. It never
// reaches API callers; it exists for logging and tests.
type Attempt struct {
	Strategy string
	URL      string
	Reason   string // empty on success
}

// Result is the tagged outcome of identifier resolution.
type Result struct {
	Status   Status
	ID       string
	Attempts []Attempt
}

// Resolver fetches upstream pages and scans them for content
// identifiers. Safe for concurrent use; all per-request state is local.
type Resolver struct {
	client      *http.Client
	matcher     *Matcher
	streamBase  string
	siteReferer string
	defaultLang string
}

// New creates a Resolver from configuration. A nil client gets the
// hardened default with the configured timeout.
func New(cfg *config.Config, client *http.Client) *Resolver {
	if client == nil {
		client = httputil.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}
	return &Resolver{
		client:      client,
		matcher:     DefaultMatcher(),
		streamBase:  strings.TrimRight(cfg.StreamBase, "/"),
		siteReferer: strings.TrimRight(cfg.SiteBase, "/") + "/",
		defaultLang: cfg.DefaultLang,
	}
}

// Resolve runs the strategy list for a page URL. It never returns an
// error: network failures, timeouts, bad statuses, parse failures and
// missing patterns all collapse into the Result status, with detail
// in Attempts and the log.
func (r *Resolver) Resolve(ctx context.Context, pageURL, lang string) Result {
	res := Result{Status: StatusNotFound}
	sawUpstreamError := false

	for _, st := range r.strategies(pageURL, lang) {
		id, err := r.attempt(ctx, st)
		att := Attempt{Strategy: st.Name, URL: st.URL}

		switch {
		case err != nil:
			att.Reason = err.Error()
			sawUpstreamError = true
			logrus.WithFields(logrus.Fields{
				"strategy": st.Name,
				"url":      st.URL,
			}).WithError(err).Warn("resolution attempt failed")
		case id == "":
			att.Reason = "no identifier in page"
			logrus.WithFields(logrus.Fields{
				"strategy": st.Name,
				"url":      st.URL,
			}).Debug("no identifier in page")
		}

		res.Attempts = append(res.Attempts, att)

		if id != "" {
			res.Status = StatusFound
			res.ID = id
			logrus.WithFields(logrus.Fields{
				"strategy": st.Name,
				"id":       id,
			}).Debug("identifier resolved")
			return res
		}
	}

	if sawUpstreamError {
		res.Status = StatusUpstreamError
	}
	return res
}

// attempt fetches one strategy URL and scans it for an identifier.
// A nil error with an empty identifier means the page was fetched and
// parsed but carried no token.
func (r *Resolver) attempt(ctx context.Context, st strategy) (string, error) {
	resp, err := httputil.Get(ctx, r.client, st.URL, st.Referer)
	if err != nil {
		return "", fmt.Errorf("fetching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	id, _ := ExtractToken(doc, r.matcher)
	return id, nil
}
