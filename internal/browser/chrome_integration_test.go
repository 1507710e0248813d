//go:build integration

package browser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromeBinary(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no Chrome binary on PATH")
	return ""
}

// The browser must survive every call after start-up, not only the first.
func TestIntegration_ChromeSessionOutlivesCalls(t *testing.T) {
	execPath := chromeBinary(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/page/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><h1>%s</h1><div role="article">x</div></body></html>`, r.URL.Path)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	launcher := browser.NewChromeLauncher(browser.Options{
		Headless:          true,
		ExecPath:          execPath,
		NavigationTimeout: 30 * time.Second,
	}, logger.NewNoOp())

	ctx := context.Background()
	session, err := launcher.NewSession(ctx, evasion.NewProfile())
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	for _, path := range []string{"/page/one", "/page/two"} {
		require.NoError(t, session.Navigate(ctx, srv.URL+path))

		html, contentErr := session.Content(ctx)
		require.NoError(t, contentErr)
		assert.Contains(t, html, path)

		found, existsErr := session.Exists(ctx, `div[role="article"]`)
		require.NoError(t, existsErr)
		assert.True(t, found)
	}
}
