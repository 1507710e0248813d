package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// ChangeRepository runs the read-side queries behind the recent-changes view.
// Predecessors are resolved through previous_id, so no self-join scans are needed.
type ChangeRepository struct {
	db *sqlx.DB
}

// NewChangeRepository creates a new change repository.
func NewChangeRepository(db *sqlx.DB) *ChangeRepository {
	return &ChangeRepository{db: db}
}

// PositionChanges returns rank movements recorded at or after since.
func (r *ChangeRepository) PositionChanges(ctx context.Context, since time.Time, limit int) ([]domain.PositionChange, error) {
	query := `
		SELECT s.name AS site_name, k.keyword,
		       ph.position AS current_position, prev.position AS previous_position,
		       ph.url, ph.execution_date
		FROM position_history ph
		JOIN position_history prev ON prev.id = ph.previous_id
		JOIN sites s ON s.id = ph.site_id
		JOIN keywords k ON k.id = ph.keyword_id
		WHERE ph.execution_date >= $1
		  AND ph.position IS NOT NULL
		  AND prev.position IS NOT NULL
		  AND ph.position <> prev.position
		ORDER BY ph.execution_date DESC, ph.id DESC
		LIMIT $2
	`

	rows := []domain.PositionChange{}
	if err := r.db.SelectContext(ctx, &rows, query, since, limit); err != nil {
		return nil, fmt.Errorf("failed to query position changes: %w", err)
	}
	return rows, nil
}

// NewBacklinks returns tracked backlinks first detected at or after since.
func (r *ChangeRepository) NewBacklinks(ctx context.Context, since time.Time, limit int) ([]domain.BacklinkEvent, error) {
	query := `
		SELECT s.name AS site_name, b.referring_domain, b.source_url, b.first_detected_at AS event_date
		FROM backlinks b
		JOIN sites s ON s.id = b.site_id
		WHERE b.first_detected_at >= $1 AND b.status IN ('new', 'active')
		ORDER BY b.first_detected_at DESC, b.id DESC
		LIMIT $2
	`

	rows := []domain.BacklinkEvent{}
	if err := r.db.SelectContext(ctx, &rows, query, since, limit); err != nil {
		return nil, fmt.Errorf("failed to query new backlinks: %w", err)
	}
	return rows, nil
}

// LostBacklinks returns backlinks lost at or after since.
func (r *ChangeRepository) LostBacklinks(ctx context.Context, since time.Time, limit int) ([]domain.BacklinkEvent, error) {
	query := `
		SELECT s.name AS site_name, b.referring_domain, b.source_url, b.lost_at AS event_date
		FROM backlinks b
		JOIN sites s ON s.id = b.site_id
		WHERE b.lost_at >= $1 AND b.status = 'lost'
		ORDER BY b.lost_at DESC, b.id DESC
		LIMIT $2
	`

	rows := []domain.BacklinkEvent{}
	if err := r.db.SelectContext(ctx, &rows, query, since, limit); err != nil {
		return nil, fmt.Errorf("failed to query lost backlinks: %w", err)
	}
	return rows, nil
}

// ListingChanges returns successful listing observations at or after since
// whose found flag, rating or review count differs from a successful predecessor.
func (r *ChangeRepository) ListingChanges(ctx context.Context, since time.Time, limit int) ([]domain.ListingChange, error) {
	query := `
		SELECT s.name AS site_name,
		       lh.found, prev.found AS previous_found,
		       lh.rating::float8 AS rating, prev.rating::float8 AS previous_rating,
		       lh.review_count, prev.review_count AS previous_review_count,
		       lh.execution_date
		FROM listing_history lh
		JOIN listing_history prev ON prev.id = lh.previous_id
		JOIN sites s ON s.id = lh.site_id
		WHERE lh.execution_date >= $1
		  AND lh.error_message IS NULL
		  AND prev.error_message IS NULL
		  AND (lh.rating IS DISTINCT FROM prev.rating
		       OR lh.review_count IS DISTINCT FROM prev.review_count
		       OR lh.found <> prev.found)
		ORDER BY lh.execution_date DESC, lh.id DESC
		LIMIT $2
	`

	rows := []domain.ListingChange{}
	if err := r.db.SelectContext(ctx, &rows, query, since, limit); err != nil {
		return nil, fmt.Errorf("failed to query listing changes: %w", err)
	}
	return rows, nil
}

// PositionStats aggregates rank movements recorded at or after since.
// Averages are returned unrounded.
func (r *ChangeRepository) PositionStats(ctx context.Context, since time.Time) (*domain.PositionChangeStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE ph.position < prev.position) AS improved,
			COUNT(*) FILTER (WHERE ph.position > prev.position) AS declined,
			COALESCE(AVG(prev.position - ph.position) FILTER (WHERE ph.position < prev.position), 0)::float8 AS avg_gain,
			COALESCE(AVG(ph.position - prev.position) FILTER (WHERE ph.position > prev.position), 0)::float8 AS avg_loss
		FROM position_history ph
		JOIN position_history prev ON prev.id = ph.previous_id
		WHERE ph.execution_date >= $1
		  AND ph.position IS NOT NULL
		  AND prev.position IS NOT NULL
	`

	var stats domain.PositionChangeStats
	if err := r.db.GetContext(ctx, &stats, query, since); err != nil {
		return nil, fmt.Errorf("failed to query position stats: %w", err)
	}
	return &stats, nil
}

// BacklinkStats counts backlinks detected or lost at or after since.
func (r *ChangeRepository) BacklinkStats(ctx context.Context, since time.Time) (*domain.BacklinkChangeStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('new', 'active')) AS new_count,
			COUNT(*) FILTER (WHERE status = 'lost') AS lost_count
		FROM backlinks
		WHERE first_detected_at >= $1 OR lost_at >= $1
	`

	var stats domain.BacklinkChangeStats
	if err := r.db.GetContext(ctx, &stats, query, since); err != nil {
		return nil, fmt.Errorf("failed to query backlink stats: %w", err)
	}
	stats.Net = stats.New - stats.Lost
	return &stats, nil
}
