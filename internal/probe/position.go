package probe

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// PositionResult is the outcome of one keyword lookup. A nil Position with
// Found false means the site did not appear on the first results page.
type PositionResult struct {
	Query    string
	Found    bool
	Position *int
	URL      *string
	Title    string
	RawHTML  string
}

// PositionProbe resolves the organic rank of a site for a keyword.
type PositionProbe struct {
	base
}

// NewPositionProbe creates a position probe.
func NewPositionProbe(launcher browser.Launcher, opts Options, log logger.Interface) *PositionProbe {
	return &PositionProbe{base: newBase(launcher, opts, log, "position-probe")}
}

// PositionQuery is the query issued for keyword on siteDomain.
func PositionQuery(keyword, siteDomain string) string {
	return fmt.Sprintf("%s site:%s", keyword, siteDomain)
}

// Check looks up keyword restricted to siteDomain and returns the rank of the
// first result hosted on the site.
func (p *PositionProbe) Check(ctx context.Context, keyword, siteDomain string) (*PositionResult, error) {
	query := PositionQuery(keyword, siteDomain)
	target := p.endpoints.searchURL(query, nil)

	result := &PositionResult{Query: query}
	err := p.withSession(ctx, func(session browser.Session) error {
		html, err := load(ctx, session, target)
		if err != nil {
			return err
		}
		result.RawHTML = html

		doc, err := parseDocument(html)
		if err != nil {
			return err
		}
		for _, r := range extractOrganicResults(doc, target) {
			if !matchesDomain(r.URL, siteDomain) {
				continue
			}
			rank, matched := r.Rank, r.URL
			result.Found, result.Position, result.URL, result.Title = true, &rank, &matched, r.Title
			break
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("position check for %q: %w", keyword, err)
	}

	if result.Found {
		p.log.Info("Keyword ranked", "keyword", keyword, "domain", siteDomain, "position", *result.Position)
	} else {
		p.log.Info("Keyword not ranked", "keyword", keyword, "domain", siteDomain)
	}
	return result, nil
}
