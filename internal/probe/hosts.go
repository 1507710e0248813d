package probe

import (
	"net/url"
	"strings"
)

// stripWWW removes a single leading "www." from host.
func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// hostOf returns the www-stripped host of rawURL, or "" when it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return stripWWW(u.Hostname())
}

// matchesDomain reports whether the host of rawURL contains domain.
// Both sides are compared without their "www." prefix.
func matchesDomain(rawURL, domain string) bool {
	host := hostOf(rawURL)
	clean := stripWWW(domain)
	if host == "" || clean == "" {
		return false
	}
	return strings.Contains(host, clean)
}

// isSearchEngineHost reports whether host belongs to the search engine.
func isSearchEngineHost(host string) bool {
	host = stripWWW(host)
	return host == "google.com" ||
		strings.HasPrefix(host, "google.") ||
		strings.Contains(host, ".google.")
}

// isMapsLink reports whether rawURL points into a maps surface.
func isMapsLink(rawURL string) bool {
	return strings.Contains(rawURL, "google.com/maps") || strings.Contains(rawURL, "maps.google.")
}
