package shopify

import (
	"net/url"
	"strings"
)

// parseLinkHeader maps rel names to URLs from an RFC 8288 Link header.
func parseLinkHeader(header string) map[string]string {
	parts := strings.Split(header, ",")
	links := make(map[string]string, len(parts))
	for _, part := range parts {
		seg := strings.Split(strings.TrimSpace(part), ";")
		if len(seg) < 2 {
			continue
		}
		urlPart := strings.Trim(seg[0], "<> ")
		var rel string
		for _, param := range seg[1:] {
			p := strings.SplitN(strings.TrimSpace(param), "=", 2)
			if len(p) != 2 {
				continue
			}
			if p[0] == "rel" {
				rel = strings.Trim(p[1], `"`)
			}
		}
		if rel != "" {
			links[rel] = urlPart
		}
	}
	return links
}

// nextPageInfo extracts the page_info cursor of the rel="next" link.
func nextPageInfo(header string) string {
	next := parseLinkHeader(header)["next"]
	if next == "" {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil {
		return ""
	}
	return u.Query().Get("page_info")
}
