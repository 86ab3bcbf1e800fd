package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aniworld/internal/media"
)

// parseSearchResults extracts result cards from a search page.
func parseSearchResults(doc *goquery.Document) []media.SearchResult {
	var results []media.SearchResult

	doc.Find(".post-lst li").Each(func(_ int, card *goquery.Selection) {
		// The vote element carries a count marker span that would
		// pollute the rating text.
		vote := card.Find(".vote")
		vote.Find("span").Remove()

		result := media.SearchResult{
			ID:     card.Find("a").AttrOr("href", ""),
			Name:   strings.TrimSpace(card.Find(".entry-title").Text()),
			Rating: strings.TrimSpace(vote.Text()),
			Poster: normalizeScheme(card.Find("img").AttrOr("src", "")),
		}

		if result.Name != "" {
			results = append(results, result)
		}
	})

	return results
}

// parseEpisodeListing extracts the canonical title and episode list
// from a series page. The caller fills in the listing ID.
func parseEpisodeListing(doc *goquery.Document) media.EpisodeListing {
	listing := media.EpisodeListing{
		Title: strings.TrimSpace(doc.Find(".entry-title").First().Text()),
	}

	doc.Find("#episode_by_temp li").Each(func(_ int, entry *goquery.Selection) {
		record := media.EpisodeRecord{
			EpisodeID: entry.Find(".lnk-blk").AttrOr("href", ""),
			Title:     strings.TrimSpace(entry.Find(".entry-title").Text()),
			Image:     normalizeScheme(entry.Find("img").AttrOr("src", "")),
			Number:    parseEpisodeNumber(entry.Find(".num-epi").Text()),
		}
		listing.Episodes = append(listing.Episodes, record)
	})

	listing.TotalEpisodes = len(listing.Episodes)
	return listing
}

// parseEpisodeNumber reads the numeric suffix after the last "x" of an
// SxE-shaped label. Malformed labels keep the record with number 0.
func parseEpisodeNumber(label string) int {
	label = strings.TrimSpace(label)
	idx := strings.LastIndex(label, "x")
	if idx == -1 || idx == len(label)-1 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(label[idx+1:]))
	if err != nil {
		return 0
	}
	return n
}

// normalizeScheme prefixes protocol-relative URLs with https.
func normalizeScheme(rawURL string) string {
	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}
	return rawURL
}
