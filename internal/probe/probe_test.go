package probe_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const positionsPage = `<html><body><div id="search"><div id="rso">
<div class="g"><a href="https://other.com/a"><h3>Other</h3></a></div>
<div class="g"><span>Sponsored block without link</span></div>
<div class="g"><a href="https://www.example.com/services"><h3>Example services</h3></a></div>
<div class="g"><a href="https://example.com/b"><h3>Second hit</h3></a></div>
</div></div></body></html>`

const backlinksPage = `<html><body><div id="search"><div id="rso">
<div class="g"><a href="https://www.blog.fr/post-1"><h3>Post</h3></a></div>
<div class="g"><a href="https://blog.fr/post-2"><h3>Another post</h3></a></div>
<div class="g"><a href="https://www.google.com/url?q=x"><h3>Engine</h3></a></div>
<div class="g"><a href="https://shop.example.com/page"><h3>Own shop</h3></a></div>
<div class="g"><span>No link</span></div>
<div class="g"><a href="/relative"><h3>Relative</h3></a></div>
<div class="g"><a href="https://news.org/article"><h3>News</h3></a></div>
</div></div></body></html>`

const placePage = `<html><body>
<h1> Acme Plomberie </h1>
<button jsaction="pane.rating.category">Plombier</button>
<div role="img" aria-label="4,6 étoiles 128 avis"></div>
<a href="https://www.google.com/maps/dir/">Itinéraire</a>
<a href="/maps/place/acme/photos">Photos</a>
<a href="%s">Site Web</a>
</body></html>`

type fixture struct {
	srv      *httptest.Server
	queries  chan string
	website  string
	articles bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, "https://www.example.com/", true)
}

func newFixtureWith(t *testing.T, website string, articles bool) *fixture {
	t.Helper()

	f := &fixture{queries: make(chan string, 16), website: website, articles: articles}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.queries <- r.URL.RawQuery
		switch {
		case strings.Contains(q.Get("q"), "-site:"):
			fmt.Fprint(w, backlinksPage)
		case strings.HasSuffix(q.Get("q"), "google business"):
			fmt.Fprint(w, `<html><body>
				<a href="https://www.google.com/maps/search/acme">Search</a>
				<a href="/maps/place/acme">Acme Plomberie</a>
			</body></html>`)
		default:
			fmt.Fprint(w, positionsPage)
		}
	})
	mux.HandleFunc("/maps/search/", func(w http.ResponseWriter, r *http.Request) {
		f.queries <- r.URL.Path
		if !f.articles {
			fmt.Fprint(w, `<html><body><p>Aucun résultat</p></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><div role="article"><a href="/maps/place/acme">Acme</a></div></body></html>`)
	})
	mux.HandleFunc("/maps/place/acme", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, placePage, f.website)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) options() probe.Options {
	return probe.Options{
		Endpoints: probe.Endpoints{Search: f.srv.URL + "/search", Maps: f.srv.URL + "/maps/search/"},
		Profile:   evasion.NewProfile,
	}
}

// countingLauncher records how many sessions were opened and closed.
type countingLauncher struct {
	inner  browser.Launcher
	opened atomic.Int32
	closed atomic.Int32
}

func (l *countingLauncher) NewSession(ctx context.Context, p evasion.Profile) (browser.Session, error) {
	s, err := l.inner.NewSession(ctx, p)
	if err != nil {
		return nil, err
	}
	l.opened.Add(1)
	return &countingSession{Session: s, closed: &l.closed}, nil
}

type countingSession struct {
	browser.Session
	closed *atomic.Int32
}

func (s *countingSession) Close() error {
	s.closed.Add(1)
	return s.Session.Close()
}

func newLauncher() *countingLauncher {
	return &countingLauncher{inner: browser.NewHTTPLauncher(browser.Options{}, nil, logger.NewNoOp())}
}

func TestPositionProbe_RanksFirstMatchingResult(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	launcher := newLauncher()
	p := probe.NewPositionProbe(launcher, f.options(), logger.NewNoOp())

	res, err := p.Check(context.Background(), "plombier paris", "example.com")
	require.NoError(t, err)

	assert.Equal(t, "plombier paris site:example.com", res.Query)
	require.True(t, res.Found)
	require.NotNil(t, res.Position)
	assert.Equal(t, 3, *res.Position)
	assert.Equal(t, "https://www.example.com/services", *res.URL)
	assert.Equal(t, "Example services", res.Title)
	assert.Contains(t, res.RawHTML, `id="rso"`)

	raw := <-f.queries
	assert.Contains(t, raw, "hl=fr")
	assert.Contains(t, raw, "gl=fr")
	assert.Equal(t, int32(1), launcher.closed.Load())
}

func TestPositionProbe_StripsWWWFromSiteDomain(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := probe.NewPositionProbe(newLauncher(), f.options(), logger.NewNoOp())

	res, err := p.Check(context.Background(), "plombier", "www.example.com")
	require.NoError(t, err)
	require.NotNil(t, res.Position)
	assert.Equal(t, 3, *res.Position)
}

func TestPositionProbe_NotFoundIsNotAnError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := probe.NewPositionProbe(newLauncher(), f.options(), logger.NewNoOp())

	res, err := p.Check(context.Background(), "plombier", "absent.net")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, res.Position)
	assert.Nil(t, res.URL)
	assert.NotEmpty(t, res.RawHTML)
}

func TestPositionProbe_NavigationFailureClosesSession(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	launcher := newLauncher()
	p := probe.NewPositionProbe(launcher, probe.Options{Endpoints: probe.Endpoints{Search: srv.URL + "/search"}}, logger.NewNoOp())

	_, err := p.Check(context.Background(), "plombier", "example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, browser.ErrNavigation))
	assert.Equal(t, launcher.opened.Load(), launcher.closed.Load())
}

func TestBacklinkProbe_FiltersAndDedupes(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := probe.NewBacklinkProbe(newLauncher(), f.options(), logger.NewNoOp())

	res, err := p.Check(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, `"example.com" -site:example.com`, res.Query)
	assert.Equal(t, []domain.BacklinkRef{
		{ReferringDomain: "blog.fr", SourceURL: "https://www.blog.fr/post-1", Title: "Post"},
		{ReferringDomain: "news.org", SourceURL: "https://news.org/article", Title: "News"},
	}, res.Backlinks)
	assert.Equal(t, 2, res.TotalFound)
	assert.Contains(t, <-f.queries, "num=50")
}

func listingSite() *domain.Site {
	name, city := "Acme Plomberie", "Paris"
	return &domain.Site{ID: 1, Domain: "example.com", Name: "Example", ListingName: &name, ListingCity: &city}
}

func TestListingProbe_TargetedValidatesWebsite(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	launcher := newLauncher()
	p := probe.NewListingProbe(launcher, f.options(), logger.NewNoOp())

	res, err := p.Check(context.Background(), listingSite())
	require.NoError(t, err)

	assert.Equal(t, probe.ListingModeTargeted, res.Mode)
	assert.Equal(t, "/maps/search/Acme Plomberie Paris", <-f.queries)
	assert.True(t, res.Found)
	assert.Equal(t, "Acme Plomberie", *res.BusinessName)
	assert.Equal(t, "Plombier", *res.Category)
	assert.InDelta(t, 4.6, *res.Rating, 0.001)
	assert.Equal(t, 128, *res.ReviewCount)
	assert.Equal(t, "https://www.example.com/", *res.WebsiteURL)
	assert.Equal(t, int32(1), launcher.closed.Load())
}

func TestListingProbe_MismatchedWebsiteKeepsFields(t *testing.T) {
	t.Parallel()
	f := newFixtureWith(t, "https://example-other.com/", true)
	p := probe.NewListingProbe(newLauncher(), f.options(), logger.NewNoOp())

	res, err := p.Check(context.Background(), listingSite())
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.True(t, res.Matched())
	assert.Equal(t, "https://example-other.com/", *res.WebsiteURL)
	assert.Equal(t, 128, *res.ReviewCount)
}

func TestListingProbe_NoArticle(t *testing.T) {
	t.Parallel()
	f := newFixtureWith(t, "https://www.example.com/", false)
	p := probe.NewListingProbe(newLauncher(), f.options(), logger.NewNoOp())

	res, err := p.Check(context.Background(), listingSite())
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.False(t, res.Matched())
	assert.Contains(t, res.RawHTML, "Aucun résultat")
}

func TestListingProbe_DiscoveryFollowsPlaceLink(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := probe.NewListingProbe(newLauncher(), f.options(), logger.NewNoOp())

	site := &domain.Site{ID: 2, Domain: "example.com", Name: "Example"}
	res, err := p.Check(context.Background(), site)
	require.NoError(t, err)

	assert.Equal(t, probe.ListingModeDiscovery, res.Mode)
	assert.Equal(t, `"example.com" google business`, res.Query)
	assert.True(t, res.Found)
	assert.Equal(t, "Acme Plomberie", *res.BusinessName)
}
