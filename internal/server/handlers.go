package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"aniworld/internal/media"
	"aniworld/internal/resolve"
)

// handleIndex serves the service banner and endpoint list.
func (s *Server) handleIndex(c *gin.Context) {
	success(c, gin.H{
		"message": "AnimeWorld API is running",
		"endpoints": gin.H{
			"search":   "/api/search?q=query",
			"episodes": "/api/episodes?url=animeUrl",
			"stream":   "/api/stream?url=episodeUrl",
			"watch":    "/api/watch?title=animeTitle&episode=1",
		},
	})
}

// handleSearch serves GET /api/search?q=. Upstream failures degrade to
// an empty result list, not an error response.
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, `Query parameter "q" is required`)
		return
	}

	results, err := s.scraper.Search(c.Request.Context(), query)
	if err != nil {
		logrus.WithField("query", query).WithError(err).Warn("search failed")
		results = nil
	}
	if results == nil {
		results = []media.SearchResult{}
	}

	success(c, gin.H{"results": results})
}

// handleEpisodes serves GET /api/episodes?url=. A series page that
// could not be fetched yields an empty info object.
func (s *Server) handleEpisodes(c *gin.Context) {
	seriesURL := c.Query("url")
	if seriesURL == "" {
		fail(c, http.StatusBadRequest, `Query parameter "url" is required`)
		return
	}

	listing, err := s.scraper.Episodes(c.Request.Context(), seriesURL)
	if err != nil {
		logrus.WithField("url", seriesURL).WithError(err).Warn("episode listing failed")
		success(c, gin.H{"info": gin.H{}})
		return
	}
	if listing.Episodes == nil {
		listing.Episodes = []media.EpisodeRecord{}
	}

	success(c, gin.H{"info": listing})
}

// handleStream serves GET /api/stream?url=&lang=. Not-found and
// upstream-error outcomes both collapse to the empty payload; the
// distinction lives in the log only.
func (s *Server) handleStream(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		fail(c, http.StatusBadRequest, `Query parameter "url" is required`)
		return
	}
	lang := c.Query("lang")

	res := s.resolver.Resolve(c.Request.Context(), pageURL, lang)

	resolved := media.EmptyMedia()
	if res.Status == resolve.StatusFound {
		resolved = s.linker.Link(res.ID, lang)
	} else {
		logrus.WithFields(logrus.Fields{
			"url":      pageURL,
			"outcome":  res.Status.String(),
			"attempts": len(res.Attempts),
		}).Info("no stream resolved")
	}

	success(c, gin.H{"sources": resolved.Sources, "tracks": resolved.Tracks})
}

// handleWatch serves GET /api/watch?title=&episode=: the candidate
// player URLs for a title across the supported audio languages.
func (s *Server) handleWatch(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		fail(c, http.StatusBadRequest, `Query parameter "title" is required`)
		return
	}

	built := s.slugs.Build(title, c.Query("episode"))
	success(c, gin.H{"slug": built.Slug, "candidates": built.Candidates})
}
