// Package media defines shared value types for the aniworld service.
// All types are freshly constructed per request; nothing here is cached
// or shared across requests.
package media

// Source is a single playable stream reference.
type Source struct {
	URL  string `json:"url"`
	Type string `json:"type"` // e.g., "hls"
}

// Track is a subtitle or caption track attached to a stream.
type Track struct {
	Label string `json:"label"`
	File  string `json:"file"`
	Kind  string `json:"kind"` // e.g., "captions"
}

// ResolvedMedia is the terminal payload of the resolution pipeline.
// The empty value (no sources, no tracks) is the designated
// "not found" representation surfaced to API callers.
type ResolvedMedia struct {
	Sources []Source `json:"sources"`
	Tracks  []Track  `json:"tracks"`
}

// Empty reports whether the media carries no playable sources.
func (m ResolvedMedia) Empty() bool {
	return len(m.Sources) == 0
}

// EmptyMedia returns the canonical empty result with non-nil slices,
// so it serializes as [] rather than null.
func EmptyMedia() ResolvedMedia {
	return ResolvedMedia{Sources: []Source{}, Tracks: []Track{}}
}

// WatchCandidate is one player-page URL for a slug in a specific
// audio language.
type WatchCandidate struct {
	URL        string `json:"url"`
	RenderMode string `json:"type"` // always "iframe"
	Label      string `json:"quality"`
}

// SearchResult is a single card from the upstream search page.
type SearchResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating string `json:"rating"`
	Poster string `json:"poster"`
}

// EpisodeRecord is one entry from a series episode list.
type EpisodeRecord struct {
	EpisodeID string `json:"episodeId"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Number    int    `json:"number"`
}

// EpisodeListing is the parsed series page: canonical title plus the
// episode list. The zero value is returned when the series page could
// not be fetched.
type EpisodeListing struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Episodes      []EpisodeRecord `json:"episodes"`
	TotalEpisodes int             `json:"totalEpisodes"`
}
