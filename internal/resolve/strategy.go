package resolve

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"aniworld/internal/slug"
)

// episodeSegment is the <series>-<season>x<episode> shape of an
// episode page's final URL path segment. Digits only for season and
// episode; the second binding format contract with the upstream.
var episodeSegment = regexp.MustCompile(`^(.*?)-(\d+)x(\d+)$`)

// strategy is one ordered attempt at recovering a content identifier:
// a URL to fetch and the referer to present while fetching it.
type strategy struct {
	Name    string
	URL     string
	Referer string
}

// strategies returns the ordered attempt list for a page URL. The
// page itself is always first; the derived embed URL follows only
// when the path segment matches the episode shape.
func (r *Resolver) strategies(pageURL, lang string) []strategy {
	list := []strategy{{Name: "page", URL: pageURL, Referer: r.siteReferer}}
	if embed, ok := r.embedStrategy(pageURL, lang); ok {
		list = append(list, embed)
	}
	return list
}

// embedStrategy derives the secondary embed URL from the episode page
// URL. Returns false when the last path segment does not match the
// episode shape, which terminates resolution after the primary attempt.
func (r *Resolver) embedStrategy(pageURL, lang string) (strategy, bool) {
	seg := lastPathSegment(pageURL)
	m := episodeSegment.FindStringSubmatch(seg)
	if m == nil {
		return strategy{}, false
	}

	series, episode := m[1], m[3]
	if lang == "" {
		lang = r.defaultLang
	}

	embedSlug := series + slug.Separator + episode
	return strategy{
		Name:    "embed",
		URL:     fmt.Sprintf("%s/watch?v=%s&lang=%s", r.streamBase, url.QueryEscape(embedSlug), url.QueryEscape(lang)),
		Referer: pageURL,
	}, true
}

// lastPathSegment returns the last non-empty path segment of a URL.
func lastPathSegment(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		path = u.Path
	}
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
