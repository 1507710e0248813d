package monitor

//go:generate mockgen -source=interfaces.go -destination=../../testutils/mocks/monitor/monitor.go -package=monitor

import (
	"context"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/probe"
)

// PositionChecker resolves the rank of a site for one keyword.
type PositionChecker interface {
	Check(ctx context.Context, keyword, siteDomain string) (*probe.PositionResult, error)
}

// ListingChecker reads the business listing of a site.
type ListingChecker interface {
	Check(ctx context.Context, site *domain.Site) (*probe.ListingResult, error)
}

// BacklinkChecker collects the referring pages of a site.
type BacklinkChecker interface {
	Check(ctx context.Context, siteDomain string) (*probe.BacklinkResult, error)
}

// Pacer sleeps between probes.
type Pacer interface {
	Wait(ctx context.Context) (time.Duration, error)
}

// SiteStore reads the monitored sites.
type SiteStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Site, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Site, error)
}

// KeywordStore reads a site's keywords.
type KeywordStore interface {
	ListBySite(ctx context.Context, siteID int64, activeOnly bool) ([]*domain.Keyword, error)
}

// PositionStore appends ranking observations.
type PositionStore interface {
	Insert(ctx context.Context, obs *domain.PositionObservation) error
	GetByID(ctx context.Context, id int64) (*domain.PositionObservation, error)
}

// ListingStore appends listing observations.
type ListingStore interface {
	Insert(ctx context.Context, obs *domain.ListingObservation) error
	GetByID(ctx context.Context, id int64) (*domain.ListingObservation, error)
}

// BacklinkStore reconciles the tracked backlinks of a site with a fresh scrape.
type BacklinkStore interface {
	Reconcile(
		ctx context.Context, siteID int64, current []domain.BacklinkRef, diff database.DiffFunc, now time.Time,
	) (*domain.BacklinkChanges, error)
}

// AlertStore persists alerts.
type AlertStore interface {
	Create(ctx context.Context, alert *domain.Alert) error
}

// ExecutionStore tracks run state.
type ExecutionStore interface {
	Start(ctx context.Context, execType domain.ExecutionType, siteID *int64, startedAt time.Time) (*domain.Execution, error)
	Finish(ctx context.Context, id int64, status domain.ExecutionStatus, errMsg *string, completedAt time.Time) error
	FailRunning(ctx context.Context, msg string, completedAt time.Time) (int64, error)
}
