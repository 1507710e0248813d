package database

import (
	"context"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// SiteRepositoryInterface defines the contract for site data access.
type SiteRepositoryInterface interface {
	Create(ctx context.Context, site *domain.Site) error
	GetByID(ctx context.Context, id int64) (*domain.Site, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Site, error)
	ListActiveWithoutKeywords(ctx context.Context) ([]*domain.Site, error)
	Domains(ctx context.Context) ([]string, error)
	Update(ctx context.Context, site *domain.Site) error
	Delete(ctx context.Context, id int64) error
}

// KeywordRepositoryInterface defines the contract for keyword data access.
type KeywordRepositoryInterface interface {
	Create(ctx context.Context, kw *domain.Keyword) error
	ListBySite(ctx context.Context, siteID int64, activeOnly bool) ([]*domain.Keyword, error)
	Update(ctx context.Context, kw *domain.Keyword) error
	Delete(ctx context.Context, siteID, id int64) error
}

// PositionRepositoryInterface defines the contract for ranking history.
type PositionRepositoryInterface interface {
	Insert(ctx context.Context, obs *domain.PositionObservation) error
	GetByID(ctx context.Context, id int64) (*domain.PositionObservation, error)
	Latest(ctx context.Context, siteID, keywordID int64) (*domain.PositionObservation, error)
	History(ctx context.Context, siteID int64, keywordID *int64, since time.Time) ([]*domain.PositionObservation, error)
	LatestExecution(ctx context.Context, siteID int64) ([]*domain.PositionObservation, error)
	OnDay(ctx context.Context, siteID, keywordID int64, day time.Time) (*domain.PositionObservation, error)
}

// ListingRepositoryInterface defines the contract for listing history.
type ListingRepositoryInterface interface {
	Insert(ctx context.Context, obs *domain.ListingObservation) error
	GetByID(ctx context.Context, id int64) (*domain.ListingObservation, error)
	Latest(ctx context.Context, siteID int64) (*domain.ListingObservation, error)
	History(ctx context.Context, siteID int64, since time.Time) ([]*domain.ListingObservation, error)
}

// BacklinkRepositoryInterface defines the contract for the backlink table.
type BacklinkRepositoryInterface interface {
	Reconcile(
		ctx context.Context, siteID int64, current []domain.BacklinkRef, diff DiffFunc, now time.Time,
	) (*domain.BacklinkChanges, error)
	ListBySite(ctx context.Context, siteID int64) ([]*domain.Backlink, error)
	ListByStatus(ctx context.Context, siteID int64, status domain.BacklinkStatus, limit int) ([]*domain.Backlink, error)
	Stats(ctx context.Context, siteID int64, now time.Time) (*domain.BacklinkStats, error)
}

// AlertRepositoryInterface defines the contract for alert data access.
type AlertRepositoryInterface interface {
	Create(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id int64) (*domain.Alert, error)
	List(ctx context.Context, filter AlertFilter) ([]*domain.Alert, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, siteID *int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	UnreadCount(ctx context.Context, siteID *int64) (int, error)
}

// ExecutionRepositoryInterface defines the contract for execution run tracking.
type ExecutionRepositoryInterface interface {
	Start(ctx context.Context, execType domain.ExecutionType, siteID *int64, startedAt time.Time) (*domain.Execution, error)
	Finish(ctx context.Context, id int64, status domain.ExecutionStatus, errMsg *string, completedAt time.Time) error
	GetByID(ctx context.Context, id int64) (*domain.Execution, error)
	Recent(ctx context.Context, limit int) ([]*domain.Execution, error)
	FailRunning(ctx context.Context, msg string, completedAt time.Time) (int64, error)
}

// ChangeRepositoryInterface defines the read-side change queries.
type ChangeRepositoryInterface interface {
	PositionChanges(ctx context.Context, since time.Time, limit int) ([]domain.PositionChange, error)
	NewBacklinks(ctx context.Context, since time.Time, limit int) ([]domain.BacklinkEvent, error)
	LostBacklinks(ctx context.Context, since time.Time, limit int) ([]domain.BacklinkEvent, error)
	ListingChanges(ctx context.Context, since time.Time, limit int) ([]domain.ListingChange, error)
	PositionStats(ctx context.Context, since time.Time) (*domain.PositionChangeStats, error)
	BacklinkStats(ctx context.Context, since time.Time) (*domain.BacklinkChangeStats, error)
}

var (
	_ SiteRepositoryInterface      = (*SiteRepository)(nil)
	_ KeywordRepositoryInterface   = (*KeywordRepository)(nil)
	_ PositionRepositoryInterface  = (*PositionRepository)(nil)
	_ ListingRepositoryInterface   = (*ListingRepository)(nil)
	_ BacklinkRepositoryInterface  = (*BacklinkRepository)(nil)
	_ AlertRepositoryInterface     = (*AlertRepository)(nil)
	_ ExecutionRepositoryInterface = (*ExecutionRepository)(nil)
	_ ChangeRepositoryInterface    = (*ChangeRepository)(nil)
)
