package match

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

var accentReplacer = strings.NewReplacer(
	"ã", "a", "á", "a", "à", "a", "â", "a",
	"é", "e", "ê", "e", "í", "i", "ó", "o",
	"ô", "o", "õ", "o", "ú", "u", "ç", "c",
)

// Normalize lowercases a product name, replaces accented letters and keeps
// only letters, digits and single spaces.
func Normalize(name string) string {
	s := accentReplacer.Replace(strings.ToLower(name))
	s = nonAlnum.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
