package slug

import (
	"regexp"
	"strings"
	"testing"

	"aniworld/internal/config"
)

var slugAlphabet = regexp.MustCompile(`^[a-z0-9-]*$`)

func testBuilder() *Builder {
	return NewBuilder(config.Default())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Naruto", "naruto"},
		{"spaces to dashes", "One Piece", "one-piece"},
		{"whitespace runs", "One   Piece\tFilm", "one-piece-film"},
		{"special characters stripped", "Re:Zero - Starting Life!", "rezero-starting-life"},
		{"dash runs collapsed", "Fate / Stay -- Night", "fate-stay-night"},
		{"unicode stripped", "進撃の巨人 Attack on Titan", "attack-on-titan"},
		{"empty", "", ""},
		{"only specials", "!!!???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.title); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestBuildSlugShape(t *testing.T) {
	b := testBuilder()

	titles := []string{
		"Naruto",
		"ONE PIECE",
		"  leading and trailing  ",
		"símbolos – estranhos",
		"",
		"a---b   c!!!d",
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			res := b.Build(title, "1")

			if !strings.HasSuffix(res.Slug, Separator+"1") {
				t.Errorf("slug %q missing episode suffix", res.Slug)
			}
			body := strings.TrimSuffix(res.Slug, Separator+"1")
			if !slugAlphabet.MatchString(body) {
				t.Errorf("slug body %q contains invalid characters", body)
			}
			if strings.Contains(body, "--") {
				t.Errorf("slug body %q contains a double dash", body)
			}
			// Idempotence: normalizing the slug body changes nothing.
			if got := Normalize(body); got != body {
				t.Errorf("Normalize not idempotent: %q -> %q", body, got)
			}
		})
	}
}

func TestBuildEmptyTitleDegenerates(t *testing.T) {
	res := testBuilder().Build("", "1")
	if res.Slug != Separator+"1" {
		t.Errorf("empty title slug = %q, want %q", res.Slug, Separator+"1")
	}
}

func TestBuildDefaultEpisode(t *testing.T) {
	res := testBuilder().Build("Naruto", "")
	if res.Slug != "naruto"+Separator+"1" {
		t.Errorf("slug = %q, want naruto%s1", res.Slug, Separator)
	}
}

func TestBuildCandidates(t *testing.T) {
	res := testBuilder().Build("One Piece", "12")

	if len(res.Candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(res.Candidates))
	}

	wantLangs := []string{"japanese", "english", "hindi"}
	for i, c := range res.Candidates {
		if !strings.Contains(c.URL, "one-piece"+Separator+"12") {
			t.Errorf("candidate[%d].URL = %q, missing slug", i, c.URL)
		}
		if !strings.Contains(c.URL, "lang="+wantLangs[i]) {
			t.Errorf("candidate[%d].URL = %q, want lang=%s", i, c.URL, wantLangs[i])
		}
		if !strings.HasPrefix(c.URL, "https://beta.awstream.net/watch?v=") {
			t.Errorf("candidate[%d].URL = %q, want templated watch URL", i, c.URL)
		}
		if c.RenderMode != "iframe" {
			t.Errorf("candidate[%d].RenderMode = %q, want iframe", i, c.RenderMode)
		}
		if c.Label != "beta.awstream ("+wantLangs[i]+")" {
			t.Errorf("candidate[%d].Label = %q", i, c.Label)
		}
	}
}
