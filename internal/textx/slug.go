// Package textx normalizes free text into URL-safe slugs.
package textx

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Fold decomposes s (NFKD) and drops combining marks, so "Électronique"
// becomes "Electronique".
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slugify lower-cases and accent-folds s and joins its alphanumeric runs
// with single hyphens: "Hip Hop" -> "hip-hop", "R&B" -> "r-b".
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(Fold(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// IsSlug reports whether s is already a valid slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
