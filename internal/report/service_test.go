package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeChanges struct {
	database.ChangeRepositoryInterface
	since     time.Time
	positions []domain.PositionChange
	added     []domain.BacklinkEvent
	lost      []domain.BacklinkEvent
	listings  []domain.ListingChange
	posStats  domain.PositionChangeStats
	linkStats domain.BacklinkChangeStats
}

func (f *fakeChanges) PositionChanges(_ context.Context, since time.Time, _ int) ([]domain.PositionChange, error) {
	f.since = since
	out := []domain.PositionChange{}
	for _, p := range f.positions {
		if !p.ExecutionDate.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeChanges) NewBacklinks(context.Context, time.Time, int) ([]domain.BacklinkEvent, error) {
	return f.added, nil
}

func (f *fakeChanges) LostBacklinks(context.Context, time.Time, int) ([]domain.BacklinkEvent, error) {
	return f.lost, nil
}

func (f *fakeChanges) ListingChanges(context.Context, time.Time, int) ([]domain.ListingChange, error) {
	return f.listings, nil
}

func (f *fakeChanges) PositionStats(_ context.Context, since time.Time) (*domain.PositionChangeStats, error) {
	f.since = since
	stats := f.posStats
	return &stats, nil
}

func (f *fakeChanges) BacklinkStats(context.Context, time.Time) (*domain.BacklinkChangeStats, error) {
	stats := f.linkStats
	return &stats, nil
}

type fakePositions struct {
	database.PositionRepositoryInterface
	latest []*domain.PositionObservation
	byDay  map[string]*domain.PositionObservation
}

func (f *fakePositions) LatestExecution(context.Context, int64) ([]*domain.PositionObservation, error) {
	return f.latest, nil
}

func (f *fakePositions) OnDay(_ context.Context, _, _ int64, day time.Time) (*domain.PositionObservation, error) {
	if obs, ok := f.byDay[day.Format(time.DateOnly)]; ok {
		return obs, nil
	}
	return nil, database.ErrObservationNotFound
}

type fakeSites struct {
	database.SiteRepositoryInterface
	site *domain.Site
}

func (f *fakeSites) GetByID(_ context.Context, id int64) (*domain.Site, error) {
	if f.site == nil || f.site.ID != id {
		return nil, database.ErrSiteNotFound
	}
	return f.site, nil
}

type fakeListings struct {
	database.ListingRepositoryInterface
	rows  []*domain.ListingObservation
	since time.Time
}

func (f *fakeListings) History(_ context.Context, _ int64, since time.Time) ([]*domain.ListingObservation, error) {
	f.since = since
	return f.rows, nil
}

type fakeBacklinks struct {
	database.BacklinkRepositoryInterface
	limit int
}

func (f *fakeBacklinks) Stats(context.Context, int64, time.Time) (*domain.BacklinkStats, error) {
	return &domain.BacklinkStats{Total: 4, Active: 2, Lost: 1, NewThisMonth: 1}, nil
}

func (f *fakeBacklinks) ListByStatus(
	_ context.Context, _ int64, _ domain.BacklinkStatus, limit int,
) ([]*domain.Backlink, error) {
	f.limit = limit
	return []*domain.Backlink{{ID: 1, Status: domain.BacklinkStatusActive}}, nil
}

func newService(repos report.Repositories) *report.Service {
	return report.NewService(repos, logger.NewNoOp(), func() time.Time { return now })
}

func ptr[T any](v T) *T { return &v }

func TestRecentChanges_MergesNewestFirst(t *testing.T) {
	t.Parallel()

	changes := &fakeChanges{
		positions: []domain.PositionChange{
			{SiteName: "Example", Keyword: "plombier", CurrentPosition: 4, PreviousPosition: 9, ExecutionDate: now.Add(-48 * time.Hour)},
		},
		added: []domain.BacklinkEvent{{SiteName: "Example", ReferringDomain: "blog.fr", SourceURL: "https://blog.fr/a", Date: now.Add(-time.Hour)}},
		lost:  []domain.BacklinkEvent{{SiteName: "Example", ReferringDomain: "news.org", SourceURL: "https://news.org/x", Date: now.Add(-72 * time.Hour)}},
		listings: []domain.ListingChange{{
			SiteName: "Example", PreviousFound: true, Found: false,
			Rating: ptr(4.2), PreviousRating: ptr(4.5),
			ReviewCount: ptr(130), PreviousReviewCount: ptr(128),
			ExecutionDate: now.Add(-24 * time.Hour),
		}},
	}
	svc := newService(report.Repositories{Changes: changes})

	got, err := svc.RecentChanges(context.Background(), 7)
	require.NoError(t, err)

	types := make([]report.ChangeType, 0, len(got))
	for _, c := range got {
		types = append(types, c.Type)
	}
	assert.Equal(t, []report.ChangeType{
		report.ChangeBacklinkNew,
		report.ChangeListingRating,
		report.ChangeListingReviews,
		report.ChangeListingLost,
		report.ChangePosition,
		report.ChangeBacklinkLost,
	}, types)

	assert.Equal(t, report.ImpactPositive, got[0].Impact)
	assert.Equal(t, report.ImpactNegative, got[1].Impact)
	assert.InDelta(t, -0.3, got[1].Change, 0.0001)
	assert.Equal(t, report.ImpactNeutral, got[2].Impact)
	assert.Equal(t, "2 new listing review(s)", got[2].Title)
	assert.Equal(t, report.ImpactPositive, got[4].Impact)
	assert.InDelta(t, -5, got[4].Change, 0)
	assert.Equal(t, "Position 9 → 4", got[4].Description)
}

func TestRecentChanges_WindowBoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	boundary := now.AddDate(0, 0, -7)
	changes := &fakeChanges{positions: []domain.PositionChange{
		{SiteName: "Example", Keyword: "on the edge", CurrentPosition: 2, PreviousPosition: 1, ExecutionDate: boundary},
		{SiteName: "Example", Keyword: "too old", CurrentPosition: 2, PreviousPosition: 1, ExecutionDate: boundary.Add(-time.Second)},
	}}
	svc := newService(report.Repositories{Changes: changes})

	got, err := svc.RecentChanges(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, boundary, changes.since)
	require.Len(t, got, 1)
	assert.Equal(t, "on the edge", got[0].Title)
}

func TestChangeStats_RoundsAndNets(t *testing.T) {
	t.Parallel()

	changes := &fakeChanges{
		posStats:  domain.PositionChangeStats{Improved: 3, Declined: 2, AvgGain: 2.36, AvgLoss: 4.04},
		linkStats: domain.BacklinkChangeStats{New: 5, Lost: 7},
	}
	svc := newService(report.Repositories{Changes: changes})

	stats, err := svc.ChangeStats(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, now.AddDate(0, 0, -report.DefaultChangeDays), changes.since)
	assert.InDelta(t, 2.4, stats.Positions.AvgGain, 0.0001)
	assert.InDelta(t, 4.0, stats.Positions.AvgLoss, 0.0001)
	assert.Equal(t, -2, stats.Backlinks.Net)
}

func TestComparePositions(t *testing.T) {
	t.Parallel()

	positions := &fakePositions{
		latest: []*domain.PositionObservation{
			{SiteID: 1, KeywordID: 5, Position: ptr(5), Keyword: ptr("plombier"), ExecutionDate: now},
		},
		byDay: map[string]*domain.PositionObservation{
			"2026-03-09": {Position: ptr(8)},
			"2026-02-08": {Position: nil},
		},
	}
	svc := newService(report.Repositories{Positions: positions})

	got, err := svc.ComparePositions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	cmp := got[0]
	assert.Equal(t, "plombier", cmp.Keyword)
	require.NotNil(t, cmp.Day1)
	assert.Equal(t, -3, *cmp.Day1.Change)
	assert.Nil(t, cmp.Day7)
	require.NotNil(t, cmp.Day30)
	assert.Nil(t, cmp.Day30.Position)
	assert.Nil(t, cmp.Day30.Change)
}

func TestBacklinksByStatus_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := newService(report.Repositories{Backlinks: &fakeBacklinks{}})

	_, err := svc.BacklinksByStatus(context.Background(), 1, domain.BacklinkStatus("gone"))
	require.ErrorIs(t, err, report.ErrInvalidStatus)
}

func TestSiteDashboard(t *testing.T) {
	t.Parallel()

	site := &domain.Site{ID: 1, Domain: "example.com", Name: "Example"}
	listings := &fakeListings{rows: []*domain.ListingObservation{{ID: 3, Found: true}, {ID: 2}}}
	backlinks := &fakeBacklinks{}
	svc := newService(report.Repositories{
		Sites:     &fakeSites{site: site},
		Positions: &fakePositions{},
		Listings:  listings,
		Backlinks: backlinks,
	})

	dash, err := svc.SiteDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, site, dash.Site)
	assert.Empty(t, dash.Positions)
	assert.Equal(t, int64(3), dash.Listing.ID)
	assert.Equal(t, now.AddDate(0, 0, -7), listings.since)
	assert.Equal(t, 4, dash.Backlinks.Stats.Total)
	assert.Equal(t, 10, backlinks.limit)

	_, err = svc.SiteDashboard(context.Background(), 99)
	require.ErrorIs(t, err, database.ErrSiteNotFound)
}
