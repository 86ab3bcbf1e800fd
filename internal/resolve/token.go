package resolve

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// defaultTokenPattern matches the player's sniff("...", "<id>") call
// with a 32-digit lowercase hex identifier as its second argument.
// This is one of the two binding format contracts with the upstream;
// reproduce it byte-for-byte.
const defaultTokenPattern = `sniff\(\s*"[^"]+",\s*"([a-f0-9]{32})"`

// Matcher locates an embedded content identifier inside script text.
// It is decoupled from resolution control flow so it can be swapped
// when the upstream revises its player markup.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles a token pattern. The pattern must carry exactly
// one capture group holding the identifier.
func NewMatcher(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling token pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("token pattern must have exactly one capture group, has %d", re.NumSubexp())
	}
	return &Matcher{re: re}, nil
}

// DefaultMatcher returns the matcher for the current upstream format.
func DefaultMatcher() *Matcher {
	return &Matcher{re: regexp.MustCompile(defaultTokenPattern)}
}

// ExtractToken scans every inline script element of the document in
// order and returns the first identifier the matcher finds.
func ExtractToken(doc *goquery.Document, m *Matcher) (string, bool) {
	var token string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if sub := m.re.FindStringSubmatch(s.Text()); sub != nil {
			token = sub[1]
			return false
		}
		return true
	})
	return token, token != ""
}
