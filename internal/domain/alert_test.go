package domain_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertMetadata_StorageBoundary(t *testing.T) {
	t.Parallel()

	city := "Lyon"
	tests := []struct {
		name string
		meta domain.AlertMetadata
	}{
		{
			name: "position drop",
			meta: domain.PositionDropMetadata{Keyword: "plombier lyon", PreviousPosition: 3, CurrentPosition: 15, Drop: 12},
		},
		{
			name: "listing lost",
			meta: domain.ListingLostMetadata{City: &city},
		},
		{
			name: "backlinks lost",
			meta: domain.BacklinksLostMetadata{
				Count: 1,
				Lost:  []domain.BacklinkRef{{ReferringDomain: "blog.fr", SourceURL: "https://blog.fr/a"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields, err := domain.EncodeAlertMetadata(tt.meta)
			require.NoError(t, err)

			// Simulate a JSONB round trip through the driver.
			value, err := fields.Value()
			require.NoError(t, err)
			var scanned domain.JSONBMap
			require.NoError(t, scanned.Scan(value))

			decoded, err := domain.DecodeAlertMetadata(tt.meta.AlertType(), scanned)
			require.NoError(t, err)
			assert.Equal(t, tt.meta, decoded)
		})
	}
}

func TestDecodeAlertMetadata_UnknownTypeKeepsFields(t *testing.T) {
	t.Parallel()

	decoded, err := domain.DecodeAlertMetadata("custom", domain.JSONBMap{"k": "v"})
	require.NoError(t, err)

	raw, ok := decoded.(domain.RawMetadata)
	require.True(t, ok)
	assert.Equal(t, domain.AlertType("custom"), raw.AlertType())
	assert.Equal(t, "v", raw.Fields["k"])
}

func TestSite_HasListingTarget(t *testing.T) {
	t.Parallel()

	name, city, empty := "Rico", "Paris", ""
	assert.True(t, (&domain.Site{ListingName: &name, ListingCity: &city}).HasListingTarget())
	assert.False(t, (&domain.Site{ListingName: &name}).HasListingTarget())
	assert.False(t, (&domain.Site{ListingName: &name, ListingCity: &empty}).HasListingTarget())
}

func TestBacklinkRef_Key(t *testing.T) {
	t.Parallel()

	ref := domain.BacklinkRef{ReferringDomain: "a.fr", SourceURL: "https://a.fr/x"}
	assert.Equal(t, "a.fr|https://a.fr/x", ref.Key())
}
