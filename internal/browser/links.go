package browser

import (
	"fmt"
	"net/url"
)

// resolveLink resolves href against base.
func resolveLink(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	h, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", href, err)
	}
	return b.ResolveReference(h).String(), nil
}
