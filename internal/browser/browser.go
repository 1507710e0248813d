// Package browser drives the page-rendering backend used by probes.
// A Session is one isolated browsing context; callers must Close it on every path.
package browser

import (
	"context"
	"errors"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
)

// Backend failures. ErrNavigation fails one probe; ErrBackendUnavailable
// means no probe can run at all.
var (
	ErrNavigation         = errors.New("navigation failed")
	ErrBackendUnavailable = errors.New("browser backend unavailable")
)

// Defaults shared by backends.
const (
	DefaultNavigationTimeout = 60 * time.Second
	DefaultSettleDelay       = 2 * time.Second
)

// Session is one browsing context.
type Session interface {
	// Navigate loads url and waits for the page to settle.
	Navigate(ctx context.Context, url string) error
	// Content returns the current document markup.
	Content(ctx context.Context) (string, error)
	// Exists reports whether selector matches any element.
	Exists(ctx context.Context, selector string) (bool, error)
	// Click activates the first element matching selector and waits for the page to settle.
	Click(ctx context.Context, selector string) error
	// Close releases the session.
	Close() error
}

// Launcher opens sessions.
type Launcher interface {
	NewSession(ctx context.Context, profile evasion.Profile) (Session, error)
}

// Options configures a backend.
type Options struct {
	Headless          bool
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	ExecPath          string
}

func (o Options) withDefaults() Options {
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = DefaultNavigationTimeout
	}
	if o.SettleDelay < 0 {
		o.SettleDelay = 0
	}
	return o
}
