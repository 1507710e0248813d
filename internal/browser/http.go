package browser

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// HTTPLauncher opens sessions that fetch pages with colly and run no scripts.
// Clicks follow the link of the matched element.
type HTTPLauncher struct {
	opts      Options
	transport http.RoundTripper
	log       logger.Interface
}

// NewHTTPLauncher creates a colly-backed launcher. A nil transport uses the default.
func NewHTTPLauncher(opts Options, transport http.RoundTripper, log logger.Interface) *HTTPLauncher {
	return &HTTPLauncher{opts: opts.withDefaults(), transport: transport, log: log.WithComponent("browser")}
}

// NewSession returns a session carrying the profile's user agent and language.
func (l *HTTPLauncher) NewSession(_ context.Context, profile evasion.Profile) (Session, error) {
	return &httpSession{launcher: l, profile: profile}, nil
}

type httpSession struct {
	launcher *HTTPLauncher
	profile  evasion.Profile

	mu      sync.Mutex
	current string
	body    string
	doc     *goquery.Document
}

func (s *httpSession) collector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(s.profile.UserAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(s.launcher.opts.NavigationTimeout)
	if s.launcher.transport != nil {
		c.WithTransport(s.launcher.transport)
	}
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", s.profile.AcceptLanguage)
		r.Headers.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	})
	return c
}

func (s *httpSession) Navigate(ctx context.Context, url string) error {
	var (
		body     string
		finalURL string
	)

	c := s.collector(ctx)
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
		finalURL = r.Request.URL.String()
	})

	if err := c.Visit(url); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: parse %s: %w", ErrNavigation, url, err)
	}

	s.mu.Lock()
	s.current, s.body, s.doc = finalURL, body, doc
	s.mu.Unlock()

	s.launcher.log.Debug("Fetched page", "url", finalURL, "bytes", len(body))
	return nil
}

func (s *httpSession) Content(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.body, nil
}

func (s *httpSession) Exists(_ context.Context, selector string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return false, nil
	}
	return s.doc.Find(selector).Length() > 0, nil
}

func (s *httpSession) Click(ctx context.Context, selector string) error {
	s.mu.Lock()
	doc, current := s.doc, s.current
	s.mu.Unlock()

	if doc == nil {
		return fmt.Errorf("%w: click %s before navigation", ErrNavigation, selector)
	}

	node := doc.Find(selector).First()
	href, ok := node.Attr("href")
	if !ok {
		href, ok = node.Find("a[href]").First().Attr("href")
	}
	if !ok || href == "" {
		return fmt.Errorf("%w: %s has no link to follow", ErrNavigation, selector)
	}

	target, err := resolveLink(current, href)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNavigation, err)
	}
	return s.Navigate(ctx, target)
}

func (s *httpSession) Close() error {
	s.mu.Lock()
	s.doc, s.body = nil, ""
	s.mu.Unlock()
	return nil
}
