package api

import (
	"context"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/report"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/sites"
)

// SiteService manages sites and keywords.
type SiteService interface {
	List(ctx context.Context) ([]*domain.Site, error)
	ListAll(ctx context.Context) ([]*domain.Site, error)
	Get(ctx context.Context, id int64) (*domain.Site, error)
	Create(ctx context.Context, in sites.SiteInput) (*domain.Site, error)
	Update(ctx context.Context, id int64, in sites.SiteInput) (*domain.Site, error)
	Delete(ctx context.Context, id int64) error
	Keywords(ctx context.Context, siteID int64) ([]*domain.Keyword, error)
	AddKeyword(ctx context.Context, siteID int64, text string) (*domain.Keyword, error)
	UpdateKeyword(ctx context.Context, siteID, id int64, text string, active *bool) (*domain.Keyword, error)
	DeleteKeyword(ctx context.Context, siteID, id int64) error
	BulkImport(ctx context.Context, urls []string) (*sites.ImportReport, error)
}

// ReportService answers the read-side history queries.
type ReportService interface {
	SiteDashboard(ctx context.Context, siteID int64) (*report.Dashboard, error)
	PositionHistory(ctx context.Context, siteID int64, keywordID *int64, days int) ([]*domain.PositionObservation, error)
	ComparePositions(ctx context.Context, siteID int64) ([]report.PositionComparison, error)
	ListingHistory(ctx context.Context, siteID int64, days int) ([]*domain.ListingObservation, error)
	BacklinksHistory(ctx context.Context, siteID int64) ([]*domain.Backlink, error)
	BacklinksByStatus(ctx context.Context, siteID int64, status domain.BacklinkStatus) ([]*domain.Backlink, error)
	BacklinkStats(ctx context.Context, siteID int64) (*domain.BacklinkStats, error)
	RecentExecutions(ctx context.Context, limit int) ([]*domain.Execution, error)
	RecentChanges(ctx context.Context, days int) ([]report.Change, error)
	ChangeStats(ctx context.Context, days int) (*report.ChangeStats, error)
}
