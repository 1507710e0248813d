package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// ListingMode is how the listing page was located.
type ListingMode string

const (
	// ListingModeTargeted searches the maps surface by business name and city.
	ListingModeTargeted ListingMode = "targeted"
	// ListingModeDiscovery searches the general surface for a place page mentioning the domain.
	ListingModeDiscovery ListingMode = "discovery"
)

// ListingResult is the outcome of a listing lookup. Found is true only when
// the listing's website belongs to the site; a mismatched listing keeps its
// extracted fields with Found false.
type ListingResult struct {
	Mode         ListingMode
	Query        string
	Found        bool
	BusinessName *string
	Category     *string
	Rating       *float64
	ReviewCount  *int
	WebsiteURL   *string
	RawHTML      string
}

// Matched reports whether a listing page was reached, owned or not.
func (r *ListingResult) Matched() bool {
	return r.BusinessName != nil || r.WebsiteURL != nil
}

// ListingProbe locates and reads the business listing of a site.
type ListingProbe struct {
	base
}

// NewListingProbe creates a listing probe.
func NewListingProbe(launcher browser.Launcher, opts Options, log logger.Interface) *ListingProbe {
	return &ListingProbe{base: newBase(launcher, opts, log, "listing-probe")}
}

// Check reads the listing for site. Sites with a known business name and city
// are looked up directly on the maps surface; others are discovered by domain.
func (p *ListingProbe) Check(ctx context.Context, site *domain.Site) (*ListingResult, error) {
	var (
		result *ListingResult
		err    error
	)
	if site.HasListingTarget() {
		result, err = p.targeted(ctx, site)
	} else {
		result, err = p.discover(ctx, site)
	}
	if err != nil {
		return nil, fmt.Errorf("listing check for %s: %w", site.Domain, err)
	}

	switch {
	case result.Found:
		p.log.Info("Listing validated", "domain", site.Domain, "mode", result.Mode, "business", deref(result.BusinessName))
	case result.Matched():
		p.log.Warn("Listing website does not match domain",
			"domain", site.Domain, "mode", result.Mode, "website", deref(result.WebsiteURL))
	default:
		p.log.Info("No listing found", "domain", site.Domain, "mode", result.Mode)
	}
	return result, nil
}

func (p *ListingProbe) targeted(ctx context.Context, site *domain.Site) (*ListingResult, error) {
	query := fmt.Sprintf("%s %s", strings.TrimSpace(*site.ListingName), strings.TrimSpace(*site.ListingCity))
	target := p.endpoints.mapsSearchURL(query)
	result := &ListingResult{Mode: ListingModeTargeted, Query: query}

	err := p.withSession(ctx, func(session browser.Session) error {
		if err := session.Navigate(ctx, target); err != nil {
			return fmt.Errorf("failed to load %s: %w", target, err)
		}
		present, err := session.Exists(ctx, listingArticle)
		if err != nil {
			return fmt.Errorf("failed to look for listing results: %w", err)
		}
		if !present {
			html, contentErr := session.Content(ctx)
			if contentErr != nil {
				return fmt.Errorf("failed to read page content: %w", contentErr)
			}
			result.RawHTML = html
			return nil
		}

		if clickErr := session.Click(ctx, listingArticle); clickErr != nil {
			return fmt.Errorf("failed to open listing: %w", clickErr)
		}
		html, err := session.Content(ctx)
		if err != nil {
			return fmt.Errorf("failed to read page content: %w", err)
		}
		return p.read(result, html, target, site.Domain)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *ListingProbe) discover(ctx context.Context, site *domain.Site) (*ListingResult, error) {
	query := fmt.Sprintf("%q google business", site.Domain)
	target := p.endpoints.searchURL(query, nil)
	result := &ListingResult{Mode: ListingModeDiscovery, Query: query}

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
		place := p.findPlaceLink(doc, target)
		if place == "" {
			return nil
		}

		placeHTML, err := load(ctx, session, place)
		if err != nil {
			return err
		}
		return p.read(result, placeHTML, place, site.Domain)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// findPlaceLink returns the first maps link that points at a place page.
func (p *ListingProbe) findPlaceLink(doc *goquery.Document, base string) string {
	var place string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		link := absoluteURL(base, href)
		if p.endpoints.isMapsLink(link) && strings.Contains(link, "/place/") {
			place = link
			return false
		}
		return true
	})
	return place
}

// read extracts the listing fields from html and validates ownership.
func (p *ListingProbe) read(result *ListingResult, html, pageURL, siteDomain string) error {
	result.RawHTML = html
	doc, err := parseDocument(html)
	if err != nil {
		return err
	}
	d := extractListing(doc, pageURL, p.endpoints)
	result.BusinessName = d.BusinessName
	result.Category = d.Category
	result.Rating = d.Rating
	result.ReviewCount = d.ReviewCount
	result.WebsiteURL = d.WebsiteURL
	result.Found = ValidateListingWebsite(d.WebsiteURL, siteDomain)
	return nil
}

// ValidateListingWebsite reports whether website belongs to siteDomain: its
// host, without "www.", must contain the domain without "www.".
func ValidateListingWebsite(website *string, siteDomain string) bool {
	return website != nil && matchesDomain(*website, siteDomain)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
