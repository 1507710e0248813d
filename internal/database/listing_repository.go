package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

const listingSelectColumns = `lh.id, lh.site_id, lh.previous_id, lh.found, lh.business_name, lh.category,
	lh.rating, lh.review_count, lh.website_url, lh.execution_date, lh.raw_html, lh.error_message`

// ListingRepository stores business-listing observations and maintains listing_latest.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Insert appends an observation linked to its immediate predecessor and advances listing_latest.
func (r *ListingRepository) Insert(ctx context.Context, obs *domain.ListingObservation) error {
	query := `
		WITH prev AS (
			SELECT observation_id FROM listing_latest WHERE site_id = $1
		), inserted AS (
			INSERT INTO listing_history (
				site_id, previous_id, found, business_name, category, rating,
				review_count, website_url, execution_date, raw_html, error_message
			)
			VALUES ($1, (SELECT observation_id FROM prev), $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, previous_id
		), latest AS (
			INSERT INTO listing_latest (site_id, observation_id)
			SELECT $1, id FROM inserted
			ON CONFLICT (site_id) DO UPDATE SET observation_id = EXCLUDED.observation_id
		)
		SELECT id, previous_id FROM inserted
	`

	err := r.db.QueryRowxContext(ctx, query,
		obs.SiteID, obs.Found, obs.BusinessName, obs.Category, obs.Rating,
		obs.ReviewCount, obs.WebsiteURL, obs.ExecutionDate, obs.RawHTML, obs.ErrorMessage,
	).Scan(&obs.ID, &obs.PreviousID)
	if err != nil {
		return fmt.Errorf("failed to insert listing observation: %w", err)
	}

	return nil
}

// GetByID retrieves one observation.
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.ListingObservation, error) {
	var obs domain.ListingObservation
	query := `SELECT ` + listingSelectColumns + ` FROM listing_history lh WHERE lh.id = $1`

	if err := r.db.GetContext(ctx, &obs, query, id); err != nil {
		return nil, fmt.Errorf("failed to get listing observation %d: %w", id, getOrNotFound(err, ErrObservationNotFound))
	}

	return &obs, nil
}

// Latest returns the site's most recent observation, degraded ones included.
func (r *ListingRepository) Latest(ctx context.Context, siteID int64) (*domain.ListingObservation, error) {
	var obs domain.ListingObservation
	query := `
		SELECT ` + listingSelectColumns + `
		FROM listing_latest ll
		JOIN listing_history lh ON lh.id = ll.observation_id
		WHERE ll.site_id = $1
	`

	if err := r.db.GetContext(ctx, &obs, query, siteID); err != nil {
		return nil, fmt.Errorf("failed to get latest listing: %w", getOrNotFound(err, ErrObservationNotFound))
	}

	return &obs, nil
}

// History returns a site's observations since the given time, newest first.
func (r *ListingRepository) History(ctx context.Context, siteID int64, since time.Time) ([]*domain.ListingObservation, error) {
	query := `
		SELECT ` + listingSelectColumns + `
		FROM listing_history lh
		WHERE lh.site_id = $1 AND lh.execution_date >= $2
		ORDER BY lh.execution_date DESC, lh.id DESC
	`

	rows := []*domain.ListingObservation{}
	if err := r.db.SelectContext(ctx, &rows, query, siteID, since); err != nil {
		return nil, fmt.Errorf("failed to get listing history: %w", err)
	}

	return rows, nil
}
