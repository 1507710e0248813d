package probe

import (
	"net/url"
	"strings"
)

// Default search surfaces.
const (
	DefaultSearchURL = "https://www.google.com/search"
	DefaultMapsURL   = "https://www.google.com/maps/search/"
)

// Endpoints locates the search and maps surfaces the probes query.
type Endpoints struct {
	Search string
	Maps   string
}

func (e Endpoints) withDefaults() Endpoints {
	if e.Search == "" {
		e.Search = DefaultSearchURL
	}
	if e.Maps == "" {
		e.Maps = DefaultMapsURL
	}
	if !strings.HasSuffix(e.Maps, "/") {
		e.Maps += "/"
	}
	return e
}

// searchURL builds a results page URL for query with the French locale pinned.
func (e Endpoints) searchURL(query string, extra url.Values) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "fr")
	params.Set("gl", "fr")
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	return e.Search + "?" + params.Encode()
}

// mapsSearchURL builds the maps lookup URL for a business query.
func (e Endpoints) mapsSearchURL(query string) string {
	return e.Maps + url.PathEscape(query)
}

// isEngineHost reports whether host is the search engine or one of the configured surfaces.
func (e Endpoints) isEngineHost(host string) bool {
	if isSearchEngineHost(host) {
		return true
	}
	host = stripWWW(host)
	return host != "" && (host == hostOf(e.Search) || host == hostOf(e.Maps))
}

// isMapsLink reports whether rawURL points into the maps surface.
func (e Endpoints) isMapsLink(rawURL string) bool {
	if isMapsLink(rawURL) {
		return true
	}
	root := strings.TrimSuffix(e.Maps, "search/")
	return root != "" && strings.HasPrefix(rawURL, root)
}
