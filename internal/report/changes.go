package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// Feed limits per change source.
const (
	positionChangeLimit = 50
	backlinkChangeLimit = 30
	listingChangeLimit  = 20
)

// ChangeType classifies an entry of the change feed.
type ChangeType string

// Change types.
const (
	ChangePosition       ChangeType = "position"
	ChangeBacklinkNew    ChangeType = "backlink_new"
	ChangeBacklinkLost   ChangeType = "backlink_lost"
	ChangeListingRating  ChangeType = "listing_rating"
	ChangeListingReviews ChangeType = "listing_reviews"
	ChangeListingLost    ChangeType = "listing_lost"
)

// Impact tells whether a change is good or bad for the site.
type Impact string

// Impacts.
const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Change is one entry of the cross-site change feed.
type Change struct {
	Type        ChangeType     `json:"type"`
	Site        string         `json:"site"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Change      float64        `json:"change"`
	Impact      Impact         `json:"impact"`
	Date        time.Time      `json:"date"`
	Metadata    map[string]any `json:"metadata"`
}

// ChangeStats summarizes movement over a window.
type ChangeStats struct {
	Positions domain.PositionChangeStats `json:"positions"`
	Backlinks domain.BacklinkChangeStats `json:"backlinks"`
}

// RecentChanges merges position, backlink and listing changes recorded in the
// last days, the boundary included, newest first.
func (s *Service) RecentChanges(ctx context.Context, days int) ([]Change, error) {
	since := s.since(days, DefaultChangeDays)
	changes := []Change{}

	positions, err := s.changes.PositionChanges(ctx, since, positionChangeLimit)
	if err != nil {
		return nil, fmt.Errorf("recent changes: %w", err)
	}
	for _, p := range positions {
		changes = append(changes, positionChange(p))
	}

	added, err := s.changes.NewBacklinks(ctx, since, backlinkChangeLimit)
	if err != nil {
		return nil, fmt.Errorf("recent changes: %w", err)
	}
	for _, b := range added {
		changes = append(changes, Change{
			Type:        ChangeBacklinkNew,
			Site:        b.SiteName,
			Title:       "New backlink from " + b.ReferringDomain,
			Description: b.SourceURL,
			Change:      1,
			Impact:      ImpactPositive,
			Date:        b.Date,
			Metadata:    map[string]any{"referringDomain": b.ReferringDomain, "sourceUrl": b.SourceURL},
		})
	}

	lost, err := s.changes.LostBacklinks(ctx, since, backlinkChangeLimit)
	if err != nil {
		return nil, fmt.Errorf("recent changes: %w", err)
	}
	for _, b := range lost {
		changes = append(changes, Change{
			Type:        ChangeBacklinkLost,
			Site:        b.SiteName,
			Title:       "Backlink lost: " + b.ReferringDomain,
			Description: b.SourceURL,
			Change:      -1,
			Impact:      ImpactNegative,
			Date:        b.Date,
			Metadata:    map[string]any{"referringDomain": b.ReferringDomain, "sourceUrl": b.SourceURL},
		})
	}

	listings, err := s.changes.ListingChanges(ctx, since, listingChangeLimit)
	if err != nil {
		return nil, fmt.Errorf("recent changes: %w", err)
	}
	for _, l := range listings {
		changes = append(changes, listingChanges(l)...)
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Date.After(changes[j].Date)
	})
	return changes, nil
}

func positionChange(p domain.PositionChange) Change {
	delta := p.CurrentPosition - p.PreviousPosition
	impact := ImpactNegative
	if delta < 0 {
		impact = ImpactPositive
	}
	return Change{
		Type:        ChangePosition,
		Site:        p.SiteName,
		Title:       p.Keyword,
		Description: fmt.Sprintf("Position %d → %d", p.PreviousPosition, p.CurrentPosition),
		Change:      float64(delta),
		Impact:      impact,
		Date:        p.ExecutionDate,
		Metadata: map[string]any{
			"keyword":          p.Keyword,
			"currentPosition":  p.CurrentPosition,
			"previousPosition": p.PreviousPosition,
			"url":              p.URL,
		},
	}
}

// listingChanges expands one listing transition into rating, review and lost
// entries. Rating and review deltas are reported independently of found.
func listingChanges(l domain.ListingChange) []Change {
	var out []Change

	if l.Rating != nil && l.PreviousRating != nil && *l.Rating != *l.PreviousRating {
		delta := round1(*l.Rating - *l.PreviousRating)
		impact := ImpactNegative
		if delta > 0 {
			impact = ImpactPositive
		}
		out = append(out, Change{
			Type:        ChangeListingRating,
			Site:        l.SiteName,
			Title:       "Listing rating changed",
			Description: fmt.Sprintf("%.1f → %.1f stars", *l.PreviousRating, *l.Rating),
			Change:      delta,
			Impact:      impact,
			Date:        l.ExecutionDate,
			Metadata:    map[string]any{"currentRating": *l.Rating, "previousRating": *l.PreviousRating},
		})
	}

	if l.ReviewCount != nil && l.PreviousReviewCount != nil && *l.ReviewCount != *l.PreviousReviewCount {
		delta := *l.ReviewCount - *l.PreviousReviewCount
		title := fmt.Sprintf("%d new listing review(s)", delta)
		if delta < 0 {
			title = fmt.Sprintf("%d listing review(s) removed", -delta)
		}
		out = append(out, Change{
			Type:        ChangeListingReviews,
			Site:        l.SiteName,
			Title:       title,
			Description: fmt.Sprintf("%d → %d reviews", *l.PreviousReviewCount, *l.ReviewCount),
			Change:      float64(delta),
			Impact:      ImpactNeutral,
			Date:        l.ExecutionDate,
			Metadata:    map[string]any{"currentReviews": *l.ReviewCount, "previousReviews": *l.PreviousReviewCount},
		})
	}

	if l.PreviousFound && !l.Found {
		out = append(out, Change{
			Type:        ChangeListingLost,
			Site:        l.SiteName,
			Title:       "Business listing not found",
			Description: "The business listing was not detected",
			Change:      -1,
			Impact:      ImpactNegative,
			Date:        l.ExecutionDate,
			Metadata:    map[string]any{},
		})
	}

	return out
}

// ChangeStats counts improved and declined rankings with their average
// movement, and backlinks gained and lost, over the last days.
func (s *Service) ChangeStats(ctx context.Context, days int) (*ChangeStats, error) {
	since := s.since(days, DefaultChangeDays)

	positions, err := s.changes.PositionStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("change stats: %w", err)
	}
	backlinks, err := s.changes.BacklinkStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("change stats: %w", err)
	}

	stats := &ChangeStats{Positions: *positions, Backlinks: *backlinks}
	stats.Positions.AvgGain = round1(stats.Positions.AvgGain)
	stats.Positions.AvgLoss = round1(stats.Positions.AvgLoss)
	stats.Backlinks.Net = stats.Backlinks.New - stats.Backlinks.Lost
	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
