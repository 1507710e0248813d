package monitor

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// highDropThreshold is the rank drop at which a position alert becomes high severity.
const highDropThreshold = 10

// PositionDropAlert builds the alert for a rank moving from previous to
// current, or returns nil when the drop is below threshold.
func PositionDropAlert(site *domain.Site, keyword string, previous, current, threshold int) *domain.Alert {
	drop := current - previous
	if drop < threshold {
		return nil
	}

	severity := domain.SeverityMedium
	if drop >= highDropThreshold {
		severity = domain.SeverityHigh
	}

	return &domain.Alert{
		SiteID:   int64Ptr(site.ID),
		Type:     domain.AlertTypePositionDrop,
		Severity: severity,
		Title:    "Position drop: " + keyword,
		Message: fmt.Sprintf("Keyword %q dropped %d positions (%d → %d)",
			keyword, drop, previous, current),
		Metadata: domain.PositionDropMetadata{
			Keyword:          keyword,
			PreviousPosition: previous,
			CurrentPosition:  current,
			Drop:             drop,
		},
	}
}

// ListingLostAlert returns an alert when the listing was found in the previous
// observation and is missing from the current one.
func ListingLostAlert(site *domain.Site, previous, current *domain.ListingObservation) *domain.Alert {
	if previous == nil || current == nil || current.Degraded() || previous.Degraded() {
		return nil
	}
	if !previous.Found || current.Found {
		return nil
	}

	return &domain.Alert{
		SiteID:   int64Ptr(site.ID),
		Type:     domain.AlertTypeListingLost,
		Severity: domain.SeverityHigh,
		Title:    "Business listing not found",
		Message:  fmt.Sprintf("The business listing of %s could not be found", site.Name),
		Metadata: domain.ListingLostMetadata{
			BusinessName: site.ListingName,
			City:         site.ListingCity,
		},
	}
}

// BacklinksLostAlert summarizes lost backlinks in one alert, or returns nil
// when nothing was lost.
func BacklinksLostAlert(site *domain.Site, lost []domain.BacklinkRef) *domain.Alert {
	if len(lost) == 0 {
		return nil
	}

	refs := make([]domain.BacklinkRef, 0, len(lost))
	for _, l := range lost {
		refs = append(refs, domain.BacklinkRef{ReferringDomain: l.ReferringDomain, SourceURL: l.SourceURL})
	}

	return &domain.Alert{
		SiteID:   int64Ptr(site.ID),
		Type:     domain.AlertTypeBacklinksLost,
		Severity: domain.SeverityMedium,
		Title:    fmt.Sprintf("%d backlink(s) lost", len(lost)),
		Message:  fmt.Sprintf("%d backlink(s) disappeared for %s", len(lost), site.Domain),
		Metadata: domain.BacklinksLostMetadata{Count: len(refs), Lost: refs},
	}
}

// raise persists alert. Failures are logged and never fail the run.
func (s *Service) raise(ctx context.Context, alert *domain.Alert) {
	if alert == nil {
		return
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		s.log.Error("Failed to persist alert",
			"alert_type", alert.Type,
			"site_id", *alert.SiteID,
			"error", err,
		)
		return
	}
	s.metrics.AlertCreated(string(alert.Type), string(alert.Severity))
	s.log.Warn("Alert raised",
		"alert_type", alert.Type,
		"severity", alert.Severity,
		"title", alert.Title,
		"site_id", *alert.SiteID,
	)
}

func int64Ptr(v int64) *int64 {
	return &v
}
