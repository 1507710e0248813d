package probe

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// backlinkResultCount is the results page size requested for backlink lookups.
const backlinkResultCount = "50"

// BacklinkResult lists the unique referring pages found for a site.
type BacklinkResult struct {
	Query      string
	Backlinks  []domain.BacklinkRef
	RawHTML    string
	TotalFound int
}

// BacklinkProbe finds pages on other hosts that mention a site.
type BacklinkProbe struct {
	base
}

// NewBacklinkProbe creates a backlink probe.
func NewBacklinkProbe(launcher browser.Launcher, opts Options, log logger.Interface) *BacklinkProbe {
	return &BacklinkProbe{base: newBase(launcher, opts, log, "backlink-probe")}
}

// BacklinkQuery is the query issued for siteDomain.
func BacklinkQuery(siteDomain string) string {
	return fmt.Sprintf("%q -site:%s", siteDomain, siteDomain)
}

// Check returns referring pages for siteDomain, one per referring domain, in
// relevance order.
func (p *BacklinkProbe) Check(ctx context.Context, siteDomain string) (*BacklinkResult, error) {
	query := BacklinkQuery(siteDomain)
	target := p.endpoints.searchURL(query, url.Values{"num": {backlinkResultCount}})

	result := &BacklinkResult{Query: query, Backlinks: []domain.BacklinkRef{}}
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
		result.Backlinks = p.referringPages(extractOrganicResults(doc, target), siteDomain)
		result.TotalFound = len(result.Backlinks)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("backlink check for %s: %w", siteDomain, err)
	}

	p.log.Info("Backlinks collected", "domain", siteDomain, "count", result.TotalFound)
	return result, nil
}

// referringPages filters organic results down to external referring pages,
// keeping the first result per referring domain.
func (p *BacklinkProbe) referringPages(results []OrganicResult, siteDomain string) []domain.BacklinkRef {
	clean := stripWWW(siteDomain)
	refs := make([]domain.BacklinkRef, 0, len(results))
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		host := hostOf(r.URL)
		if host == "" || p.endpoints.isEngineHost(host) || strings.Contains(host, clean) {
			continue
		}
		refs = append(refs, domain.BacklinkRef{ReferringDomain: host, SourceURL: r.URL, Title: r.Title})
	}
	return DedupeBacklinks(refs)
}

// DedupeBacklinks keeps the first reference per referring domain.
func DedupeBacklinks(refs []domain.BacklinkRef) []domain.BacklinkRef {
	seen := make(map[string]struct{}, len(refs))
	out := make([]domain.BacklinkRef, 0, len(refs))
	for _, r := range refs {
		if _, dup := seen[r.ReferringDomain]; dup {
			continue
		}
		seen[r.ReferringDomain] = struct{}{}
		out = append(out, r)
	}
	return out
}
