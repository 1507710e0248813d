package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// ChromeLauncher starts one headless Chrome per session through chromedp.
type ChromeLauncher struct {
	opts Options
	log  logger.Interface
}

// NewChromeLauncher creates a chromedp-backed launcher.
func NewChromeLauncher(opts Options, log logger.Interface) *ChromeLauncher {
	return &ChromeLauncher{opts: opts.withDefaults(), log: log.WithComponent("browser")}
}

// NewSession starts a browser with the profile applied. A browser that cannot
// start yields ErrBackendUnavailable.
func (l *ChromeLauncher) NewSession(ctx context.Context, profile evasion.Profile) (Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", profile.Locale),
		chromedp.UserAgent(profile.UserAgent),
		chromedp.WindowSize(profile.ViewportWidth, profile.ViewportHeight),
	)
	if l.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(l.opts.ExecPath))
	}

	// The browser outlives individual calls, so it is not bound to ctx.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	s := &chromeSession{
		tab:    tabCtx,
		opts:   l.opts,
		cancel: func() { tabCancel(); allocCancel() },
	}

	if err := s.start(ctx); err != nil {
		s.cancel()
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	err := s.run(ctx,
		chromedp.EmulateViewport(int64(profile.ViewportWidth), int64(profile.ViewportHeight)),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": profile.AcceptLanguage}),
	)
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	l.log.Debug("Browser session started", "user_agent", profile.UserAgent, "headless", l.opts.Headless)
	return s, nil
}

type chromeSession struct {
	tab    context.Context //nolint:containedctx // chromedp binds the tab to a context
	opts   Options
	cancel context.CancelFunc
}

// start launches the browser process. The first Run on a tab owns the
// process lifetime, so it must not carry a deadline: cancelling it kills Chrome.
// ctx only aborts the launch itself.
func (s *chromeSession) start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, s.cancel)
	err := chromedp.Run(s.tab)
	if !stop() {
		return ctx.Err()
	}
	return err
}

// run executes actions on the tab, bounded by the navigation timeout and ctx.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.tab, s.opts.NavigationTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (s *chromeSession) settle() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.WaitReady("body", chromedp.ByQuery).Do(ctx); err != nil {
			return err
		}
		if s.opts.SettleDelay > 0 {
			return chromedp.Sleep(s.opts.SettleDelay).Do(ctx)
		}
		return nil
	})
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url), s.settle()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	return nil
}

func (s *chromeSession) Content(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: read document: %w", ErrNavigation, err)
	}
	return html, nil
}

func (s *chromeSession) Exists(ctx context.Context, selector string) (bool, error) {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return false, err
	}

	var found bool
	expr := fmt.Sprintf("document.querySelector(%s) !== null", quoted)
	if runErr := s.run(ctx, chromedp.Evaluate(expr, &found)); runErr != nil {
		return false, fmt.Errorf("%w: query %s: %w", ErrNavigation, selector, runErr)
	}
	return found, nil
}

func (s *chromeSession) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible), s.settle()); err != nil {
		return fmt.Errorf("%w: click %s: %w", ErrNavigation, selector, err)
	}
	return nil
}

func (s *chromeSession) Close() error {
	s.cancel()
	return nil
}
