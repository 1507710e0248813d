package probe

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result page selectors.
const (
	organicSelector      = "#search .g, #rso .g"
	listingArticle       = `div[role="article"]`
	listingCategory      = `button[jsaction*="category"]`
	listingRatingElement = `div[role="img"][aria-label*="étoiles"]`
)

var (
	ratingPattern  = regexp.MustCompile(`(\d+,?\d*)\s+étoiles?`)
	reviewsPattern = regexp.MustCompile(`(\d+)\s+avis`)
)

// OrganicResult is one entry of a results page, in page order.
type OrganicResult struct {
	Rank  int
	URL   string
	Title string
}

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// extractOrganicResults lists organic results in document order. Rank counts
// every result container, including ones without a link.
func extractOrganicResults(doc *goquery.Document, base string) []OrganicResult {
	var results []OrganicResult
	doc.Find(organicSelector).Each(func(i int, s *goquery.Selection) {
		href, _ := s.Find("a[href]").First().Attr("href")
		results = append(results, OrganicResult{
			Rank:  i + 1,
			URL:   absoluteURL(base, href),
			Title: strings.TrimSpace(s.Find("h3").First().Text()),
		})
	})
	return results
}

// absoluteURL resolves href against base. Unparseable input is returned as is.
func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// listingDetails are the fields read from a listing page.
type listingDetails struct {
	BusinessName *string
	Category     *string
	Rating       *float64
	ReviewCount  *int
	WebsiteURL   *string
}

func extractListing(doc *goquery.Document, base string, endpoints Endpoints) listingDetails {
	var d listingDetails

	if name := strings.TrimSpace(doc.Find("h1").First().Text()); name != "" {
		d.BusinessName = &name
	}
	if category := strings.TrimSpace(doc.Find(listingCategory).First().Text()); category != "" {
		d.Category = &category
	}
	if label, ok := doc.Find(listingRatingElement).First().Attr("aria-label"); ok {
		d.Rating, d.ReviewCount = parseRatingLabel(label)
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		link := absoluteURL(base, href)
		if !strings.HasPrefix(link, "http") {
			return true
		}
		if endpoints.isEngineHost(hostOf(link)) || endpoints.isMapsLink(link) {
			return true
		}
		d.WebsiteURL = &link
		return false
	})

	return d
}

// parseRatingLabel reads "4,5 étoiles 123 avis" style labels. A comma is a decimal separator.
func parseRatingLabel(label string) (*float64, *int) {
	var (
		rating  *float64
		reviews *int
	)
	if m := ratingPattern.FindStringSubmatch(label); m != nil {
		if v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64); err == nil {
			rating = &v
		}
	}
	if m := reviewsPattern.FindStringSubmatch(label); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			reviews = &v
		}
	}
	return rating, reviews
}
