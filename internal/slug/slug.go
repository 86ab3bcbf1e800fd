// Package slug derives canonical watch-page identifiers from free-text
// titles. Everything here is pure string work; no network access.
package slug

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"aniworld/internal/config"
	"aniworld/internal/media"
)

// Separator joins the normalized title to the episode number. The
// upstream player derives it from the WordPress permalink encoding of
// an en dash (&#8211;), so it must be reproduced exactly.
const Separator = "-8211-episode-"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun       = regexp.MustCompile(`-+`)
)

// Result is a built slug plus its candidate watch URLs.
type Result struct {
	Slug       string
	Candidates []media.WatchCandidate
}

// Builder turns titles into slugs and watch candidates using the
// configured stream host and language set.
type Builder struct {
	streamBase string
	hostLabel  string
	languages  []string
}

// NewBuilder creates a Builder from configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		streamBase: strings.TrimRight(cfg.StreamBase, "/"),
		hostLabel:  cfg.StreamHostLabel(),
		languages:  cfg.Languages,
	}
}

// Normalize reduces a title to its URL-safe form: lowercase, whitespace
// runs to single dashes, everything outside [a-z0-9-] stripped, dash
// runs collapsed. The steps are order-sensitive.
func Normalize(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return s
}

// Build returns the canonical slug for a title and episode, plus one
// watch candidate per supported language. Total for any input; an
// empty title degenerates to just the separator and episode suffix.
func (b *Builder) Build(title, episode string) Result {
	if episode == "" {
		episode = "1"
	}
	slug := Normalize(title) + Separator + episode

	candidates := make([]media.WatchCandidate, 0, len(b.languages))
	for _, lang := range b.languages {
		candidates = append(candidates, media.WatchCandidate{
			URL:        fmt.Sprintf("%s/watch?v=%s&lang=%s", b.streamBase, url.QueryEscape(slug), url.QueryEscape(lang)),
			RenderMode: "iframe",
			Label:      fmt.Sprintf("%s (%s)", b.hostLabel, lang),
		})
	}

	return Result{Slug: slug, Candidates: candidates}
}
