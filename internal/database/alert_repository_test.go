package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alertColumns = []string{
	"id", "site_id", "alert_type", "severity", "title", "message",
	"metadata", "read", "created_at", "site_name",
}

func TestAlertRepository_Create_SerializesMetadata(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewAlertRepository(db)
	now := time.Now()

	alert := &domain.Alert{
		SiteID:   ptr(int64(1)),
		Type:     domain.AlertTypePositionDrop,
		Severity: domain.SeverityHigh,
		Title:    "Position drop: plombier",
		Message:  "plombier fell from 3 to 15",
		Metadata: domain.PositionDropMetadata{Keyword: "plombier", PreviousPosition: 3, CurrentPosition: 15, Drop: 12},
	}

	mock.ExpectQuery("INSERT INTO alerts").
		WithArgs(int64(1), "position_drop", "high", alert.Title, alert.Message, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "read", "created_at"}).AddRow(5, false, now))

	require.NoError(t, repo.Create(context.Background(), alert))
	assert.Equal(t, int64(5), alert.ID)
	assert.Equal(t, now, alert.CreatedAt)

	expectationsMet(t, mock)
}

func TestAlertRepository_List_DecodesMetadataByType(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewAlertRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM alerts a .+ WHERE a.read = \\$1 AND a.site_id = \\$2 .+ LIMIT \\$3").
		WithArgs(false, int64(1), 20).
		WillReturnRows(sqlmock.NewRows(alertColumns).
			AddRow(1, 1, "backlink_lost", "medium", "1 backlink lost", "msg",
				[]byte(`{"count":1,"lost":[{"referringDomain":"blog.fr","sourceUrl":"https://blog.fr/a"}]}`),
				false, now, "Example").
			AddRow(2, 1, "listing_lost", "high", "Listing lost", "msg",
				[]byte(`{"businessName":"Rico","city":"Paris"}`), false, now, "Example"))

	alerts, err := repo.List(context.Background(), database.AlertFilter{
		Read:   ptr(false),
		SiteID: ptr(int64(1)),
		Limit:  20,
	})
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	lost, ok := alerts[0].Metadata.(domain.BacklinksLostMetadata)
	require.True(t, ok)
	assert.Equal(t, 1, lost.Count)
	assert.Equal(t, "blog.fr", lost.Lost[0].ReferringDomain)

	listing, ok := alerts[1].Metadata.(domain.ListingLostMetadata)
	require.True(t, ok)
	assert.Equal(t, "Paris", *listing.City)

	expectationsMet(t, mock)
}

func TestAlertRepository_MarkRead_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewAlertRepository(db)

	mock.ExpectExec("UPDATE alerts SET read = TRUE WHERE id").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), 99)
	assert.True(t, errors.Is(err, database.ErrAlertNotFound))

	expectationsMet(t, mock)
}

func TestAlertRepository_UnreadCount_PerSite(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewAlertRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM alerts WHERE read = FALSE AND site_id").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.UnreadCount(context.Background(), ptr(int64(4)))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	expectationsMet(t, mock)
}
