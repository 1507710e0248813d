package browser_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body><div id="search">
			<div role="article"><a href="/place/1">Result</a></div>
			<p class="ua">%s</p><p class="lang">%s</p>
		</div></body></html>`, r.UserAgent(), r.Header.Get("Accept-Language"))
	})
	mux.HandleFunc("/place/1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Place One</h1></body></html>`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T) browser.Session {
	t.Helper()

	launcher := browser.NewHTTPLauncher(browser.Options{}, nil, logger.NewNoOp())
	session, err := launcher.NewSession(context.Background(), evasion.NewProfile())
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestHTTPSession_NavigateAppliesProfile(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	session := newSession(t)
	ctx := context.Background()

	require.NoError(t, session.Navigate(ctx, srv.URL+"/search"))

	html, err := session.Content(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "Mozilla/5.0")
	assert.Contains(t, html, evasion.DefaultAcceptLanguage)

	found, err := session.Exists(ctx, `div[role="article"]`)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = session.Exists(ctx, "h1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHTTPSession_ClickFollowsLink(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	session := newSession(t)
	ctx := context.Background()

	require.NoError(t, session.Navigate(ctx, srv.URL+"/search"))
	require.NoError(t, session.Click(ctx, `div[role="article"]`))

	html, err := session.Content(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "Place One")
}

func TestHTTPSession_ClickWithoutLink(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	session := newSession(t)
	ctx := context.Background()

	require.NoError(t, session.Navigate(ctx, srv.URL+"/search"))
	err := session.Click(ctx, "p.ua")
	assert.True(t, errors.Is(err, browser.ErrNavigation))
}

func TestHTTPSession_NavigationFailure(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	session := newSession(t)

	err := session.Navigate(context.Background(), srv.URL+"/broken")
	require.Error(t, err)
	assert.True(t, errors.Is(err, browser.ErrNavigation))
}
