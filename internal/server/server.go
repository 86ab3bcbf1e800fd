// Package server exposes the resolution pipeline over HTTP. The API
// layer is thin glue: it validates query parameters, calls into the
// core components and wraps everything in the {status, data} envelope.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aniworld/internal/config"
	"aniworld/internal/linker"
	"aniworld/internal/resolve"
	"aniworld/internal/scrape"
	"aniworld/internal/slug"
)

// Server is the HTTP front of the service.
type Server struct {
	cfg      *config.Config
	scraper  *scrape.Scraper
	resolver *resolve.Resolver
	linker   *linker.Linker
	slugs    *slug.Builder
	engine   *gin.Engine
}

// New wires the components into a gin engine. Pass nil for scraper or
// resolver to build them from the config with default clients.
func New(cfg *config.Config, scraper *scrape.Scraper, resolver *resolve.Resolver, lnk *linker.Linker) *Server {
	if scraper == nil {
		scraper = scrape.New(cfg, nil)
	}
	if resolver == nil {
		resolver = resolve.New(cfg, nil)
	}
	if lnk == nil {
		lnk = linker.New(cfg)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(recovery(), requestLogger(), cors())

	s := &Server{
		cfg:      cfg,
		scraper:  scraper,
		resolver: resolver,
		linker:   lnk,
		slugs:    slug.NewBuilder(cfg),
		engine:   engine,
	}

	engine.GET("/", s.handleIndex)
	engine.GET("/api/search", s.handleSearch)
	engine.GET("/api/episodes", s.handleEpisodes)
	engine.GET("/api/stream", s.handleStream)
	engine.GET("/api/watch", s.handleWatch)

	return s
}

// Handler returns the engine as an http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and blocks.
func (s *Server) Run() error {
	return s.engine.Run(s.cfg.ListenAddr)
}

// success writes the success envelope around a payload.
func success(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

// fail writes the error envelope with a message.
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "data": gin.H{"message": message}})
}
