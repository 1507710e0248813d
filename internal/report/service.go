// Package report aggregates stored history into dashboards, comparisons and
// change feeds.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// Defaults for windows and page sizes.
const (
	DefaultChangeDays    = 7
	DefaultHistoryDays   = 30
	dashboardListingDays = 7
	dashboardBacklinks   = 10
)

// ErrInvalidStatus is returned for an unknown backlink status filter.
var ErrInvalidStatus = errors.New("invalid backlink status")

// Service answers reporting queries.
type Service struct {
	sites      database.SiteRepositoryInterface
	positions  database.PositionRepositoryInterface
	listings   database.ListingRepositoryInterface
	backlinks  database.BacklinkRepositoryInterface
	executions database.ExecutionRepositoryInterface
	changes    database.ChangeRepositoryInterface
	log        logger.Interface
	now        func() time.Time
}

// Repositories groups the stores the service reads.
type Repositories struct {
	Sites      database.SiteRepositoryInterface
	Positions  database.PositionRepositoryInterface
	Listings   database.ListingRepositoryInterface
	Backlinks  database.BacklinkRepositoryInterface
	Executions database.ExecutionRepositoryInterface
	Changes    database.ChangeRepositoryInterface
}

// NewService creates a reporting service. A nil now uses time.Now.
func NewService(repos Repositories, log logger.Interface, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		sites:      repos.Sites,
		positions:  repos.Positions,
		listings:   repos.Listings,
		backlinks:  repos.Backlinks,
		executions: repos.Executions,
		changes:    repos.Changes,
		log:        log.WithComponent("report"),
		now:        now,
	}
}

// since returns the start of a window of days ending now. Non-positive days use fallback.
func (s *Service) since(days, fallback int) time.Time {
	if days <= 0 {
		days = fallback
	}
	return s.now().AddDate(0, 0, -days)
}

// PositionHistory returns a site's ranking observations over the last days,
// optionally narrowed to one keyword.
func (s *Service) PositionHistory(
	ctx context.Context, siteID int64, keywordID *int64, days int,
) ([]*domain.PositionObservation, error) {
	rows, err := s.positions.History(ctx, siteID, keywordID, s.since(days, DefaultHistoryDays))
	if err != nil {
		return nil, fmt.Errorf("position history: %w", err)
	}
	return rows, nil
}

// ListingHistory returns a site's listing observations over the last days.
func (s *Service) ListingHistory(ctx context.Context, siteID int64, days int) ([]*domain.ListingObservation, error) {
	rows, err := s.listings.History(ctx, siteID, s.since(days, DefaultHistoryDays))
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return rows, nil
}

// BacklinksHistory returns every tracked backlink of a site.
func (s *Service) BacklinksHistory(ctx context.Context, siteID int64) ([]*domain.Backlink, error) {
	rows, err := s.backlinks.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("backlinks history: %w", err)
	}
	return rows, nil
}

// BacklinksByStatus returns a site's backlinks in one status.
func (s *Service) BacklinksByStatus(
	ctx context.Context, siteID int64, status domain.BacklinkStatus,
) ([]*domain.Backlink, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	rows, err := s.backlinks.ListByStatus(ctx, siteID, status, 0)
	if err != nil {
		return nil, fmt.Errorf("backlinks by status: %w", err)
	}
	return rows, nil
}

// BacklinkStats counts a site's backlinks by status.
func (s *Service) BacklinkStats(ctx context.Context, siteID int64) (*domain.BacklinkStats, error) {
	stats, err := s.backlinks.Stats(ctx, siteID, s.now())
	if err != nil {
		return nil, fmt.Errorf("backlink stats: %w", err)
	}
	return stats, nil
}

// RecentExecutions lists the latest runs.
func (s *Service) RecentExecutions(ctx context.Context, limit int) ([]*domain.Execution, error) {
	rows, err := s.executions.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent executions: %w", err)
	}
	return rows, nil
}

// Dashboard is the summary view of one site.
type Dashboard struct {
	Site      *domain.Site               `json:"site"`
	Positions []PositionComparison       `json:"positions"`
	Listing   *domain.ListingObservation `json:"listing"`
	Backlinks DashboardBacklinks         `json:"backlinks"`
}

// DashboardBacklinks summarizes backlinks on the dashboard.
type DashboardBacklinks struct {
	Stats  *domain.BacklinkStats `json:"stats"`
	Recent []*domain.Backlink    `json:"recent"`
}

// SiteDashboard assembles position comparisons, the latest listing from the
// past week, backlink stats and the most recently seen active backlinks.
func (s *Service) SiteDashboard(ctx context.Context, siteID int64) (*Dashboard, error) {
	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	positions, err := s.ComparePositions(ctx, siteID)
	if err != nil {
		return nil, err
	}

	listings, err := s.ListingHistory(ctx, siteID, dashboardListingDays)
	if err != nil {
		return nil, err
	}
	var latest *domain.ListingObservation
	if len(listings) > 0 {
		latest = listings[0]
	}

	stats, err := s.BacklinkStats(ctx, siteID)
	if err != nil {
		return nil, err
	}
	recent, err := s.backlinks.ListByStatus(ctx, siteID, domain.BacklinkStatusActive, dashboardBacklinks)
	if err != nil {
		return nil, fmt.Errorf("dashboard backlinks: %w", err)
	}

	return &Dashboard{
		Site:      site,
		Positions: positions,
		Listing:   latest,
		Backlinks: DashboardBacklinks{Stats: stats, Recent: recent},
	}, nil
}
