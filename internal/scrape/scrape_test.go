package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"aniworld/internal/config"
)

func serveFixture(t *testing.T, filename string) http.HandlerFunc {
	t.Helper()
	data, err := os.ReadFile("testdata/" + filename)
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", filename, err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}
}

func scraperFor(ts *httptest.Server) *Scraper {
	cfg := config.Default()
	cfg.SiteBase = ts.URL
	return New(cfg, ts.Client())
}

func TestSearchFetchesQueryPage(t *testing.T) {
	var gotQuery string
	fixture := serveFixture(t, "search.html")
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("s")
		fixture(w, r)
	}))
	defer ts.Close()

	results, err := scraperFor(ts).Search(context.Background(), "naruto the movie")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotQuery != "naruto the movie" {
		t.Errorf("search query = %q, want 'naruto the movie'", gotQuery)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	if _, err := scraperFor(ts).Search(context.Background(), "naruto"); err == nil {
		t.Fatal("Search() should return an error on non-200 upstream")
	}
}

func TestEpisodes(t *testing.T) {
	ts := httptest.NewTLSServer(serveFixture(t, "episodes.html"))
	defer ts.Close()

	seriesURL := ts.URL + "/series/naruto/"
	listing, err := scraperFor(ts).Episodes(context.Background(), seriesURL)
	if err != nil {
		t.Fatalf("Episodes() error = %v", err)
	}

	if listing.ID != seriesURL {
		t.Errorf("ID = %q, want the series URL", listing.ID)
	}
	if listing.Title != "Naruto" {
		t.Errorf("Title = %q, want Naruto", listing.Title)
	}
	if listing.TotalEpisodes != 3 {
		t.Errorf("TotalEpisodes = %d, want 3", listing.TotalEpisodes)
	}
}

func TestEpisodesUpstreamFailure(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	listing, err := scraperFor(ts).Episodes(context.Background(), ts.URL+"/series/gone/")
	if err == nil {
		t.Fatal("Episodes() should return an error on non-200 upstream")
	}
	if listing.TotalEpisodes != 0 || listing.Title != "" {
		t.Errorf("failed fetch should yield a zero listing, got %+v", listing)
	}
}
