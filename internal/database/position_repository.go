package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

const positionSelectColumns = `ph.id, ph.site_id, ph.keyword_id, ph.previous_id, ph.position, ph.url,
	ph.search_query, ph.execution_date, ph.raw_html, ph.error_message`

// PositionRepository stores ranking observations and maintains position_latest,
// the per-(site, keyword) pointer to the most recent observation.
type PositionRepository struct {
	db *sqlx.DB
}

// NewPositionRepository creates a new position repository.
func NewPositionRepository(db *sqlx.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// Insert appends an observation, links it to the current latest observation
// through previous_id and advances the latest pointer, degraded or not, so
// previous_id always names the immediately prior row. All of it happens in one
// statement.
func (r *PositionRepository) Insert(ctx context.Context, obs *domain.PositionObservation) error {
	query := `
		WITH prev AS (
			SELECT observation_id FROM position_latest
			WHERE site_id = $1 AND keyword_id = $2
		), inserted AS (
			INSERT INTO position_history (
				site_id, keyword_id, previous_id, position, url,
				search_query, execution_date, raw_html, error_message
			)
			VALUES ($1, $2, (SELECT observation_id FROM prev), $3, $4, $5, $6, $7, $8)
			RETURNING id, previous_id
		), latest AS (
			INSERT INTO position_latest (site_id, keyword_id, observation_id)
			SELECT $1, $2, id FROM inserted
			ON CONFLICT (site_id, keyword_id) DO UPDATE SET observation_id = EXCLUDED.observation_id
		)
		SELECT id, previous_id FROM inserted
	`

	err := r.db.QueryRowxContext(ctx, query,
		obs.SiteID, obs.KeywordID, obs.Position, obs.URL,
		obs.SearchQuery, obs.ExecutionDate, obs.RawHTML, obs.ErrorMessage,
	).Scan(&obs.ID, &obs.PreviousID)
	if err != nil {
		return fmt.Errorf("failed to insert position observation: %w", err)
	}

	return nil
}

// GetByID retrieves one observation.
func (r *PositionRepository) GetByID(ctx context.Context, id int64) (*domain.PositionObservation, error) {
	var obs domain.PositionObservation
	query := `
		SELECT ` + positionSelectColumns + `, k.keyword
		FROM position_history ph
		LEFT JOIN keywords k ON k.id = ph.keyword_id
		WHERE ph.id = $1
	`

	if err := r.db.GetContext(ctx, &obs, query, id); err != nil {
		return nil, fmt.Errorf("failed to get position observation %d: %w", id, getOrNotFound(err, ErrObservationNotFound))
	}

	return &obs, nil
}

// Latest returns the most recent observation for (site, keyword), degraded ones included.
func (r *PositionRepository) Latest(ctx context.Context, siteID, keywordID int64) (*domain.PositionObservation, error) {
	var obs domain.PositionObservation
	query := `
		SELECT ` + positionSelectColumns + `, k.keyword
		FROM position_latest pl
		JOIN position_history ph ON ph.id = pl.observation_id
		LEFT JOIN keywords k ON k.id = ph.keyword_id
		WHERE pl.site_id = $1 AND pl.keyword_id = $2
	`

	if err := r.db.GetContext(ctx, &obs, query, siteID, keywordID); err != nil {
		return nil, fmt.Errorf("failed to get latest position: %w", getOrNotFound(err, ErrObservationNotFound))
	}

	return &obs, nil
}

// History returns a site's observations since the given time, newest first.
// keywordID narrows the result to one keyword when non-nil.
func (r *PositionRepository) History(
	ctx context.Context, siteID int64, keywordID *int64, since time.Time,
) ([]*domain.PositionObservation, error) {
	query := `
		SELECT ` + positionSelectColumns + `, k.keyword
		FROM position_history ph
		LEFT JOIN keywords k ON k.id = ph.keyword_id
		WHERE ph.site_id = $1 AND ph.execution_date >= $2
	`
	args := []any{siteID, since}
	if keywordID != nil {
		query += ` AND ph.keyword_id = $3`
		args = append(args, *keywordID)
	}
	query += ` ORDER BY ph.execution_date DESC, ph.id DESC`

	rows := []*domain.PositionObservation{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get position history: %w", err)
	}

	return rows, nil
}

// LatestExecution returns every observation recorded at the site's most recent execution date.
func (r *PositionRepository) LatestExecution(ctx context.Context, siteID int64) ([]*domain.PositionObservation, error) {
	query := `
		SELECT ` + positionSelectColumns + `, k.keyword
		FROM position_history ph
		LEFT JOIN keywords k ON k.id = ph.keyword_id
		WHERE ph.site_id = $1
		  AND ph.execution_date = (SELECT MAX(execution_date) FROM position_history WHERE site_id = $1)
		ORDER BY ph.keyword_id ASC
	`

	rows := []*domain.PositionObservation{}
	if err := r.db.SelectContext(ctx, &rows, query, siteID); err != nil {
		return nil, fmt.Errorf("failed to get latest execution positions: %w", err)
	}

	return rows, nil
}

// OnDay returns the last observation for (site, keyword) on the calendar day of day.
// It returns ErrObservationNotFound when nothing was recorded that day.
func (r *PositionRepository) OnDay(
	ctx context.Context, siteID, keywordID int64, day time.Time,
) (*domain.PositionObservation, error) {
	var obs domain.PositionObservation
	query := `
		SELECT ` + positionSelectColumns + `, NULL AS keyword
		FROM position_history ph
		WHERE ph.site_id = $1 AND ph.keyword_id = $2
		  AND ph.execution_date::date = $3::date
		ORDER BY ph.execution_date DESC, ph.id DESC
		LIMIT 1
	`

	if err := r.db.GetContext(ctx, &obs, query, siteID, keywordID, day.Format(time.DateOnly)); err != nil {
		return nil, fmt.Errorf("failed to get position on %s: %w",
			day.Format(time.DateOnly), getOrNotFound(err, ErrObservationNotFound))
	}

	return &obs, nil
}
