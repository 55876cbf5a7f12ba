package search

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/labelshop/internal/textx"
)

// Category values derived for every hit.
const (
	CategoryVinyl    = "vinyl"
	CategoryCD       = "cd"
	CategoryCassette = "cassette"
	CategoryDigital  = "digital"
	CategoryMerch    = "merch"
	CategoryOther    = "other"
)

var (
	genreSeparators = regexp.MustCompile(`(?i)[/,;&|]|\s+and\s+`)
	// "R&B" would otherwise fall apart on the ampersand.
	rhythmAndBlues = regexp.MustCompile(`(?i)\br\s*&\s*b\b`)
)

var genreAliases = map[string]string{
	"hiphop":      "hip-hop",
	"rap":         "hip-hop",
	"rnb":         "r-and-b",
	"r-b":         "r-and-b",
	"electronica": "electronic",
}

// categoryWords are matched against whole words; order decides ties.
var categoryWords = []struct {
	category string
	words    []string
}{
	{CategoryVinyl, []string{"lp", "ep", "vinyl", `7"`, `12"`}},
	{CategoryCD, []string{"cd"}},
	{CategoryCassette, []string{"cassette", "tape"}},
	{CategoryDigital, []string{"digital", "download", "flac", "mp3"}},
	{CategoryMerch, []string{"shirt", "tee", "hoodie", "merch", "poster", "tote"}},
}

// Genres splits raw genre strings into normalized, de-duplicated slugs.
func Genres(raw ...string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range raw {
		r = rhythmAndBlues.ReplaceAllString(r, "rnb")
		for _, part := range genreSeparators.Split(r, -1) {
			slug := textx.Slugify(strings.TrimSpace(part))
			if slug == "" {
				continue
			}
			if alias, ok := genreAliases[slug]; ok {
				slug = alias
			}
			if _, dup := seen[slug]; dup {
				continue
			}
			seen[slug] = struct{}{}
			out = append(out, slug)
		}
	}
	return out
}

func words(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '"'
	}) {
		set[w] = struct{}{}
		set[strings.TrimSuffix(w, "s")] = struct{}{}
	}
	return set
}

func matchCategory(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	ws := words(s)
	for _, c := range categoryWords {
		for _, w := range c.words {
			if _, ok := ws[w]; ok {
				return c.category
			}
		}
	}
	return ""
}

// Category looks at the candidates in order and returns the first match.
func Category(candidates ...string) string {
	for _, c := range candidates {
		if cat := matchCategory(c); cat != "" {
			return cat
		}
	}
	return CategoryOther
}

// stringField reads a string, or the "value"/"title" of a nested object.
func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, k := range []string{"value", "title", "name"} {
			if s, ok := t[k].(string); ok {
				return s
			}
		}
	}
	return ""
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := stringField(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Enrich adds "genres" and "category" to every hit and counts facets over
// the page.
func Enrich(hits []Hit) Facets {
	f := Facets{Genres: map[string]int{}, Categories: map[string]int{}}
	for _, h := range hits {
		if h == nil {
			continue
		}
		raw := append([]string{stringField(h["genre"])}, stringList(h["tags"])...)
		genres := Genres(raw...)
		category := Category(stringField(h["format"]), stringField(h["product_type"]), stringField(h["collection_title"]))

		h["genres"] = genres
		h["category"] = category

		for _, g := range genres {
			f.Genres[g]++
		}
		f.Categories[category]++
	}
	return f
}
