package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeRepository_BacklinkStats_Net(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewChangeRepository(db)
	since := time.Now().Add(-7 * 24 * time.Hour)

	mock.ExpectQuery("SELECT .+ FROM backlinks WHERE first_detected_at >= \\$1 OR lost_at >= \\$1").
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"new_count", "lost_count"}).AddRow(5, 2))

	stats, err := repo.BacklinkStats(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Net)

	expectationsMet(t, mock)
}

func TestChangeRepository_ListingChanges_SkipsDegradedPredecessors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewChangeRepository(db)
	since := time.Now().Add(-24 * time.Hour)
	at := since.Add(time.Hour)

	mock.ExpectQuery("FROM listing_history lh JOIN listing_history prev ON prev.id = lh.previous_id .+ " +
		"AND lh.error_message IS NULL AND prev.error_message IS NULL .+ LIMIT \\$2").
		WithArgs(since, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"site_name", "found", "previous_found", "rating", "previous_rating",
			"review_count", "previous_review_count", "execution_date",
		}).AddRow("Example", false, true, nil, 4.5, nil, 12, at))

	changes, err := repo.ListingChanges(context.Background(), since, 10)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.False(t, changes[0].Found)
	assert.True(t, changes[0].PreviousFound)
	require.NotNil(t, changes[0].PreviousRating)
	assert.InDelta(t, 4.5, *changes[0].PreviousRating, 0.001)
	assert.Nil(t, changes[0].Rating)

	expectationsMet(t, mock)
}
