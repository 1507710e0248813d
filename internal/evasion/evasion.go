// Package evasion supplies the browsing hygiene applied to every probe:
// user-agent rotation, randomized pacing and a humanlike browser profile.
package evasion

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Browser profile defaults.
const (
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
	DefaultLocale         = "fr-FR"
	DefaultAcceptLanguage = "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7"
)

// UserAgents is the rotation pool of desktop browser user agents.
var UserAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

// Source is the randomness used by the toolkit. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Int63n(n int64) int64
}

// lockedSource serializes access to a *rand.Rand, which is not goroutine safe.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func (s *lockedSource) Int63n(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Int63n(n)
}

// NewSource returns a goroutine-safe source seeded from the clock.
func NewSource() Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))} //nolint:gosec // pacing, not security
}

var defaultSource = NewSource()

func randomUserAgent(src Source) string {
	return UserAgents[src.Intn(len(UserAgents))]
}

// Profile is the browsing context presented to the search engine.
type Profile struct {
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	Locale         string
	AcceptLanguage string
}

// NewProfile returns the standard desktop profile with a random user agent.
func NewProfile() Profile {
	return NewProfileFrom(defaultSource)
}

// NewProfileFrom is NewProfile with an explicit randomness source.
func NewProfileFrom(src Source) Profile {
	return Profile{
		UserAgent:      randomUserAgent(src),
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		Locale:         DefaultLocale,
		AcceptLanguage: DefaultAcceptLanguage,
	}
}

// Pacer produces randomized pauses between requests.
type Pacer struct {
	min time.Duration
	max time.Duration
	src Source
}

// NewPacer creates a pacer drawing uniformly from [minDelay, maxDelay].
// Bounds are swapped if given in the wrong order and clamped at zero.
func NewPacer(minDelay, maxDelay time.Duration, src Source) *Pacer {
	if src == nil {
		src = defaultSource
	}
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		minDelay, maxDelay = maxDelay, minDelay
		if minDelay < 0 {
			minDelay = 0
		}
	}
	return &Pacer{min: minDelay, max: maxDelay, src: src}
}

// Next returns a random delay in the inclusive range [min, max].
func (p *Pacer) Next() time.Duration {
	span := int64(p.max - p.min)
	if span <= 0 {
		return p.min
	}
	return p.min + time.Duration(p.src.Int63n(span+1))
}

// Wait sleeps for Next(). It returns early with ctx.Err() when ctx is done.
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	d := p.Next()
	if d <= 0 {
		return 0, ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return d, ctx.Err()
	case <-timer.C:
		return d, nil
	}
}
