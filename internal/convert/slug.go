package convert

import (
	"regexp"
	"strings"
	"unicode"
)

// FallbackHandle is used when a name reduces to nothing.
const FallbackHandle = "produto-sem-nome"

var (
	handleDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	handleSpaces     = regexp.MustCompile(`\s+`)
	handleHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives the product handle from its name.
func Slugify(name string) string {
	h := stripAccents(name)
	h = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, h)
	h = handleDisallowed.ReplaceAllString(h, "")
	h = handleSpaces.ReplaceAllString(h, "-")
	h = handleHyphens.ReplaceAllString(h, "-")
	h = strings.Trim(h, "-")
	if h == "" {
		return FallbackHandle
	}
	return h
}
