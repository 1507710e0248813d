// Package probe queries the search surfaces for one site: organic rank per
// keyword, the business listing and referring pages. Each call opens its own
// browser session and closes it before returning.
package probe

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// ProfileFunc supplies the browser profile for a new session.
type ProfileFunc func() evasion.Profile

// Options configures a probe.
type Options struct {
	Endpoints Endpoints
	Profile   ProfileFunc
}

type base struct {
	launcher  browser.Launcher
	endpoints Endpoints
	profile   ProfileFunc
	log       logger.Interface
}

func newBase(launcher browser.Launcher, opts Options, log logger.Interface, component string) base {
	profile := opts.Profile
	if profile == nil {
		profile = evasion.NewProfile
	}
	return base{
		launcher:  launcher,
		endpoints: opts.Endpoints.withDefaults(),
		profile:   profile,
		log:       log.WithComponent(component),
	}
}

// withSession runs fn in a fresh session and closes it on every path.
func (b base) withSession(ctx context.Context, fn func(browser.Session) error) error {
	session, err := b.launcher.NewSession(ctx, b.profile())
	if err != nil {
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			b.log.Warn("Failed to close browser session", "error", closeErr)
		}
	}()
	return fn(session)
}

// load navigates to target and returns the rendered markup.
func load(ctx context.Context, session browser.Session, target string) (string, error) {
	if err := session.Navigate(ctx, target); err != nil {
		return "", fmt.Errorf("failed to load %s: %w", target, err)
	}
	html, err := session.Content(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return html, nil
}
