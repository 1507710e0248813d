package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/metrics"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/probe"
)

// Probe names used in logs and metrics.
const (
	probePosition = "position"
	probeListing  = "listing"
	probeBacklink = "backlink"
)

func (s *Service) runAllSites(ctx context.Context) error {
	sites, err := s.sites.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list active sites: %w", err)
	}
	s.log.Info("Monitoring active sites", "count", len(sites))

	for i, site := range sites {
		if i > 0 {
			if err = s.pause(ctx); err != nil {
				return err
			}
		}
		if err = s.monitorSite(ctx, site); err != nil {
			return fmt.Errorf("site %s: %w", site.Domain, err)
		}
	}
	return nil
}

// monitorSite runs positions, listing and backlinks for one site with a pause between each.
func (s *Service) monitorSite(ctx context.Context, site *domain.Site) error {
	s.log.Info("Monitoring site", "site_id", site.ID, "domain", site.Domain)

	if err := s.checkPositions(ctx, site); err != nil {
		return err
	}
	if err := s.pause(ctx); err != nil {
		return err
	}
	if err := s.checkListing(ctx, site); err != nil {
		return err
	}
	if err := s.pause(ctx); err != nil {
		return err
	}
	return s.checkBacklinks(ctx, site)
}

func (s *Service) checkPositions(ctx context.Context, site *domain.Site) error {
	keywords, err := s.keywords.ListBySite(ctx, site.ID, true)
	if err != nil {
		return fmt.Errorf("list keywords: %w", err)
	}

	// One timestamp per batch so the batch reads back as a single execution.
	executionDate := s.now()
	for i, kw := range keywords {
		if i > 0 {
			if err = s.pause(ctx); err != nil {
				return err
			}
		}
		if err = s.checkKeyword(ctx, site, kw, executionDate); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) checkKeyword(
	ctx context.Context, site *domain.Site, kw *domain.Keyword, executionDate time.Time,
) error {
	started := time.Now()
	res, probeErr := s.positionProbe.Check(ctx, kw.Keyword, site.Domain)

	obs := &domain.PositionObservation{
		SiteID:        site.ID,
		KeywordID:     kw.ID,
		SearchQuery:   probe.PositionQuery(kw.Keyword, site.Domain),
		ExecutionDate: executionDate,
	}

	switch {
	case probeErr != nil:
		s.metrics.ObserveProbe(probePosition, metrics.OutcomeError, time.Since(started))
		if isStructural(ctx, probeErr) {
			return probeErr
		}
		s.log.Warn("Position probe failed",
			"site_id", site.ID, "keyword", kw.Keyword, "error", probeErr)
		msg := probeErr.Error()
		obs.ErrorMessage = &msg
	default:
		outcome := metrics.OutcomeNotFound
		if res.Found {
			outcome = metrics.OutcomeFound
		}
		s.metrics.ObserveProbe(probePosition, outcome, time.Since(started))
		obs.SearchQuery = res.Query
		obs.Position = res.Position
		obs.URL = res.URL
		obs.RawHTML = &res.RawHTML
	}

	if err := s.positions.Insert(ctx, obs); err != nil {
		return fmt.Errorf("record position for %q: %w", kw.Keyword, err)
	}
	if obs.Degraded() {
		return nil
	}
	return s.detectPositionDrop(ctx, site, kw, obs)
}

// detectPositionDrop compares obs with the previous measurement linked through previous_id.
func (s *Service) detectPositionDrop(
	ctx context.Context, site *domain.Site, kw *domain.Keyword, obs *domain.PositionObservation,
) error {
	if obs.Position == nil || obs.PreviousID == nil {
		return nil
	}

	prev, err := s.positions.GetByID(ctx, *obs.PreviousID)
	if err != nil {
		return fmt.Errorf("load previous position for %q: %w", kw.Keyword, err)
	}
	if prev.Position == nil {
		return nil
	}

	s.raise(ctx, PositionDropAlert(site, kw.Keyword, *prev.Position, *obs.Position, s.threshold))
	return nil
}

func (s *Service) checkListing(ctx context.Context, site *domain.Site) error {
	started := time.Now()
	res, probeErr := s.listingProbe.Check(ctx, site)

	obs := &domain.ListingObservation{SiteID: site.ID, ExecutionDate: s.now()}

	switch {
	case probeErr != nil:
		s.metrics.ObserveProbe(probeListing, metrics.OutcomeError, time.Since(started))
		if isStructural(ctx, probeErr) {
			return probeErr
		}
		s.log.Warn("Listing probe failed", "site_id", site.ID, "error", probeErr)
		msg := probeErr.Error()
		obs.ErrorMessage = &msg
	default:
		outcome := metrics.OutcomeNotFound
		if res.Found {
			outcome = metrics.OutcomeFound
		}
		s.metrics.ObserveProbe(probeListing, outcome, time.Since(started))
		obs.Found = res.Found
		obs.BusinessName = res.BusinessName
		obs.Category = res.Category
		obs.Rating = res.Rating
		obs.ReviewCount = res.ReviewCount
		obs.WebsiteURL = res.WebsiteURL
		obs.RawHTML = &res.RawHTML
	}

	if err := s.listings.Insert(ctx, obs); err != nil {
		return fmt.Errorf("record listing: %w", err)
	}
	if obs.Degraded() || obs.PreviousID == nil {
		return nil
	}

	prev, err := s.listings.GetByID(ctx, *obs.PreviousID)
	if err != nil {
		return fmt.Errorf("load previous listing: %w", err)
	}
	s.raise(ctx, ListingLostAlert(site, prev, obs))
	return nil
}

func (s *Service) checkBacklinks(ctx context.Context, site *domain.Site) error {
	started := time.Now()
	res, probeErr := s.backlinkProbe.Check(ctx, site.Domain)
	if probeErr != nil {
		s.metrics.ObserveProbe(probeBacklink, metrics.OutcomeError, time.Since(started))
		if isStructural(ctx, probeErr) {
			return probeErr
		}
		// A failed scrape says nothing about the tracked set, so nothing is reconciled.
		s.log.Warn("Backlink probe failed", "site_id", site.ID, "error", probeErr)
		return nil
	}

	outcome := metrics.OutcomeNotFound
	if res.TotalFound > 0 {
		outcome = metrics.OutcomeFound
	}
	s.metrics.ObserveProbe(probeBacklink, outcome, time.Since(started))

	changes, err := s.backlinks.Reconcile(ctx, site.ID, res.Backlinks, probe.DetectBacklinkChanges, s.now())
	if err != nil {
		return fmt.Errorf("reconcile backlinks: %w", err)
	}
	s.metrics.BacklinkChanges(len(changes.New), len(changes.Lost))
	s.log.Info("Backlinks reconciled",
		"site_id", site.ID,
		"total", changes.Total,
		"new", len(changes.New),
		"lost", len(changes.Lost),
	)

	s.raise(ctx, BacklinksLostAlert(site, changes.Lost))
	return nil
}
