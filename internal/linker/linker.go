// Package linker builds the downstream media URLs for a resolved
// content identifier. Pure string templating from configuration; no
// network access.
package linker

import (
	"fmt"
	"net/url"
	"strings"

	"aniworld/internal/config"
	"aniworld/internal/media"
)

// Linker templates manifest, conversion-proxy and subtitle URLs.
type Linker struct {
	streamBase  string
	convertBase string
	defaultLang string
}

// New creates a Linker from configuration.
func New(cfg *config.Config) *Linker {
	return &Linker{
		streamBase:  strings.TrimRight(cfg.StreamBase, "/"),
		convertBase: strings.TrimRight(cfg.ConvertBase, "/"),
		defaultLang: cfg.DefaultLang,
	}
}

// ManifestURL returns the raw HLS manifest URL for an identifier.
// Never handed to players directly; always wrapped via SourceURL.
func (l *Linker) ManifestURL(id, lang string) string {
	if lang == "" {
		lang = l.defaultLang
	}
	return fmt.Sprintf("%s/m3u8/%s/master.txt?s=1&lang=%s&cache=1", l.streamBase, id, url.QueryEscape(lang))
}

// SourceURL wraps a manifest URL through the format-conversion proxy.
func (l *Linker) SourceURL(manifestURL string) string {
	return fmt.Sprintf("%s?url=%s", l.convertBase, url.QueryEscape(manifestURL))
}

// SubtitleURL returns the subtitle track URL for an identifier. The
// upstream only publishes an English track, so the requested language
// never changes it.
func (l *Linker) SubtitleURL(id string) string {
	return fmt.Sprintf("%s/subs/m3u8/%s/subtitles-eng.vtt", l.streamBase, id)
}

// Link assembles the full ResolvedMedia payload for an identifier.
// Sources and tracks are always populated together.
func (l *Linker) Link(id, lang string) media.ResolvedMedia {
	return media.ResolvedMedia{
		Sources: []media.Source{
			{URL: l.SourceURL(l.ManifestURL(id, lang)), Type: "hls"},
		},
		Tracks: []media.Track{
			{Label: "English", File: l.SubtitleURL(id), Kind: "captions"},
		},
	}
}
