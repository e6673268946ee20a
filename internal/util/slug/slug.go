// Package slug derives URL slugs from catalog names.
//
// Accented letters are folded by Unicode decomposition; other scripts are
// transliterated to ASCII before anything outside [a-z0-9] collapses to a
// single hyphen.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// pattern is what a valid slug looks like.
var pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// From converts s into a slug. It returns "" when nothing usable remains.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	ascii := unidecode.Unidecode(folded)
	ascii = strings.ToLower(ascii)
	ascii = nonAlphanumeric.ReplaceAllString(ascii, "-")
	return strings.Trim(ascii, "-")
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// OrFrom returns slug when it is non-blank, otherwise a slug derived from name.
func OrFrom(slug, name string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	return From(name)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
