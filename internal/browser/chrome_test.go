package browser_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestChromeLauncher_MissingBinaryIsBackendUnavailable(t *testing.T) {
	t.Parallel()

	launcher := browser.NewChromeLauncher(browser.Options{
		Headless: true,
		ExecPath: filepath.Join(t.TempDir(), "no-such-chrome"),
	}, logger.NewNoOp())

	session, err := launcher.NewSession(context.Background(), evasion.NewProfile())
	require.ErrorIs(t, err, browser.ErrBackendUnavailable)
	require.Nil(t, session)
}

func TestChromeLauncher_CancelledContextIsBackendUnavailable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	launcher := browser.NewChromeLauncher(browser.Options{Headless: true}, logger.NewNoOp())
	_, err := launcher.NewSession(ctx, evasion.NewProfile())
	require.ErrorIs(t, err, browser.ErrBackendUnavailable)
	require.ErrorIs(t, err, context.Canceled)
}
