package convert

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const seoDescriptionLimit = 320

var (
	styleBlock = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	anyTag     = regexp.MustCompile(`(?s)<[^>]*>`)
	spaces     = regexp.MustCompile(`\s+`)
)

// accentReplacer is the fixed substitution table for Portuguese accents.
var accentReplacer = strings.NewReplacer(
	"ã", "a", "á", "a", "à", "a", "â", "a",
	"é", "e", "ê", "e", "í", "i", "ó", "o",
	"ô", "o", "õ", "o", "ú", "u", "ç", "c",
)

// CleanHTML reduces a description to plain text: style blocks and markup
// removed, entities decoded, whitespace collapsed.
func CleanHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	var text string
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err == nil {
		doc.Find("style, script").Remove()
		text = doc.Text()
	} else {
		text = html.UnescapeString(anyTag.ReplaceAllString(styleBlock.ReplaceAllString(s, ""), ""))
	}

	// escaped markup (&lt;b&gt;) becomes real tags after decoding
	text = anyTag.ReplaceAllString(text, "")
	return collapseSpaces(text)
}

// StripStyles drops embedded <style> blocks and keeps the rest of the markup.
func StripStyles(s string) string {
	return strings.TrimSpace(styleBlock.ReplaceAllString(s, ""))
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func collapseSpaces(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// stripAccents lowercases s and applies the accent table.
func stripAccents(s string) string {
	return accentReplacer.Replace(strings.ToLower(s))
}
