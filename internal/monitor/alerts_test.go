package monitor_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() *domain.Site {
	name, city := "Acme Plomberie", "Paris"
	return &domain.Site{ID: 42, Domain: "example.com", Name: "Example", ListingName: &name, ListingCity: &city}
}

func TestPositionDropAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		previous int
		current  int
		want     domain.Severity
		drop     int
	}{
		{name: "medium drop", previous: 3, current: 9, want: domain.SeverityMedium, drop: 6},
		{name: "high drop", previous: 3, current: 15, want: domain.SeverityHigh, drop: 12},
		{name: "exactly threshold", previous: 1, current: 6, want: domain.SeverityMedium, drop: 5},
		{name: "exactly high", previous: 1, current: 11, want: domain.SeverityHigh, drop: 10},
		{name: "below threshold", previous: 3, current: 7},
		{name: "improvement", previous: 9, current: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			alert := monitor.PositionDropAlert(testSite(), "plombier paris", tt.previous, tt.current, 5)
			if tt.want == "" {
				assert.Nil(t, alert)
				return
			}

			require.NotNil(t, alert)
			assert.Equal(t, domain.AlertTypePositionDrop, alert.Type)
			assert.Equal(t, tt.want, alert.Severity)
			assert.Equal(t, int64(42), *alert.SiteID)
			assert.Equal(t, domain.PositionDropMetadata{
				Keyword:          "plombier paris",
				PreviousPosition: tt.previous,
				CurrentPosition:  tt.current,
				Drop:             tt.drop,
			}, alert.Metadata)
		})
	}
}

func TestListingLostAlert(t *testing.T) {
	t.Parallel()

	found := &domain.ListingObservation{Found: true}
	missing := &domain.ListingObservation{Found: false}
	msg := "navigation failed"
	failed := &domain.ListingObservation{ErrorMessage: &msg}

	tests := []struct {
		name     string
		previous *domain.ListingObservation
		current  *domain.ListingObservation
		alert    bool
	}{
		{name: "found to missing", previous: found, current: missing, alert: true},
		{name: "missing stays missing", previous: missing, current: missing},
		{name: "found stays found", previous: found, current: found},
		{name: "missing to found", previous: missing, current: found},
		{name: "first observation", previous: nil, current: missing},
		{name: "degraded current", previous: found, current: failed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			alert := monitor.ListingLostAlert(testSite(), tt.previous, tt.current)
			if !tt.alert {
				assert.Nil(t, alert)
				return
			}
			require.NotNil(t, alert)
			assert.Equal(t, domain.SeverityHigh, alert.Severity)
			meta, ok := alert.Metadata.(domain.ListingLostMetadata)
			require.True(t, ok)
			assert.Equal(t, "Acme Plomberie", *meta.BusinessName)
			assert.Equal(t, "Paris", *meta.City)
		})
	}
}

func TestBacklinksLostAlert(t *testing.T) {
	t.Parallel()

	assert.Nil(t, monitor.BacklinksLostAlert(testSite(), nil))

	lost := []domain.BacklinkRef{
		{ReferringDomain: "blog.fr", SourceURL: "https://blog.fr/a", Title: "A"},
		{ReferringDomain: "news.org", SourceURL: "https://news.org/b"},
	}
	alert := monitor.BacklinksLostAlert(testSite(), lost)
	require.NotNil(t, alert)

	assert.Equal(t, domain.AlertTypeBacklinksLost, alert.Type)
	assert.Equal(t, domain.SeverityMedium, alert.Severity)
	assert.Equal(t, "2 backlink(s) lost", alert.Title)
	meta, ok := alert.Metadata.(domain.BacklinksLostMetadata)
	require.True(t, ok)
	assert.Equal(t, 2, meta.Count)
	assert.Empty(t, meta.Lost[0].Title)
	assert.Equal(t, "https://news.org/b", meta.Lost[1].SourceURL)
}
