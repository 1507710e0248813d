package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

const backlinkSelectColumns = `id, site_id, referring_domain, source_url, title, status,
	first_detected_at, last_seen_at, lost_at`

// recentWindow is the lookback used for the "new this month" statistic.
const recentWindow = 30 * 24 * time.Hour

// DiffFunc compares a fresh scrape with the tracked set.
type DiffFunc func(current, previous []domain.BacklinkRef) domain.BacklinkChanges

// BacklinkRepository handles the durable backlink table.
type BacklinkRepository struct {
	db *sqlx.DB
}

// NewBacklinkRepository creates a new backlink repository.
func NewBacklinkRepository(db *sqlx.DB) *BacklinkRepository {
	return &BacklinkRepository{db: db}
}

// Reconcile diffs a fresh scrape against the site's tracked (new or active)
// backlinks and applies the result in one transaction: lost rows are marked
// lost, new rows are inserted (or reactivated), and unchanged rows are
// refreshed and promoted to active.
func (r *BacklinkRepository) Reconcile(
	ctx context.Context, siteID int64, current []domain.BacklinkRef, diff DiffFunc, now time.Time,
) (*domain.BacklinkChanges, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin backlink transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	previous, err := trackedBacklinks(ctx, tx, siteID)
	if err != nil {
		return nil, err
	}

	changes := diff(current, previous)

	for _, ref := range changes.Lost {
		if lostErr := markBacklinkLost(ctx, tx, siteID, ref, now); lostErr != nil {
			return nil, lostErr
		}
	}
	for _, ref := range changes.New {
		if newErr := upsertBacklink(ctx, tx, siteID, ref, now); newErr != nil {
			return nil, newErr
		}
	}
	for _, ref := range changes.Unchanged {
		if seenErr := touchBacklink(ctx, tx, siteID, ref, now); seenErr != nil {
			return nil, seenErr
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, fmt.Errorf("failed to commit backlink transaction: %w", commitErr)
	}

	return &changes, nil
}

// trackedBacklinks locks and returns the site's non-lost backlinks.
func trackedBacklinks(ctx context.Context, tx *sqlx.Tx, siteID int64) ([]domain.BacklinkRef, error) {
	query := `
		SELECT referring_domain, source_url, COALESCE(title, '') AS title
		FROM backlinks
		WHERE site_id = $1 AND status IN ('new', 'active')
		ORDER BY id ASC
		FOR UPDATE
	`

	rows, err := tx.QueryxContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracked backlinks: %w", err)
	}
	defer rows.Close()

	refs := []domain.BacklinkRef{}
	for rows.Next() {
		var ref domain.BacklinkRef
		if scanErr := rows.Scan(&ref.ReferringDomain, &ref.SourceURL, &ref.Title); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tracked backlink: %w", scanErr)
		}
		refs = append(refs, ref)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate tracked backlinks: %w", rowsErr)
	}

	return refs, nil
}

func markBacklinkLost(ctx context.Context, tx *sqlx.Tx, siteID int64, ref domain.BacklinkRef, now time.Time) error {
	query := `
		UPDATE backlinks SET status = 'lost', lost_at = $1
		WHERE site_id = $2 AND referring_domain = $3 AND source_url = $4
	`
	if _, err := tx.ExecContext(ctx, query, now, siteID, ref.ReferringDomain, ref.SourceURL); err != nil {
		return fmt.Errorf("failed to mark backlink lost: %w", err)
	}
	return nil
}

func upsertBacklink(ctx context.Context, tx *sqlx.Tx, siteID int64, ref domain.BacklinkRef, now time.Time) error {
	query := `
		INSERT INTO backlinks (site_id, referring_domain, source_url, title, status, first_detected_at, last_seen_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), 'new', $5, $5)
		ON CONFLICT (site_id, referring_domain, source_url) DO UPDATE
		SET status = 'active',
		    last_seen_at = EXCLUDED.last_seen_at,
		    lost_at = NULL,
		    title = COALESCE(EXCLUDED.title, backlinks.title)
	`
	if _, err := tx.ExecContext(ctx, query, siteID, ref.ReferringDomain, ref.SourceURL, ref.Title, now); err != nil {
		return fmt.Errorf("failed to insert backlink: %w", err)
	}
	return nil
}

func touchBacklink(ctx context.Context, tx *sqlx.Tx, siteID int64, ref domain.BacklinkRef, now time.Time) error {
	query := `
		UPDATE backlinks SET last_seen_at = $1, status = 'active'
		WHERE site_id = $2 AND referring_domain = $3 AND source_url = $4
	`
	if _, err := tx.ExecContext(ctx, query, now, siteID, ref.ReferringDomain, ref.SourceURL); err != nil {
		return fmt.Errorf("failed to refresh backlink: %w", err)
	}
	return nil
}

// ListBySite returns every backlink of a site, most recently detected first.
func (r *BacklinkRepository) ListBySite(ctx context.Context, siteID int64) ([]*domain.Backlink, error) {
	query := `SELECT ` + backlinkSelectColumns + ` FROM backlinks WHERE site_id = $1 ORDER BY first_detected_at DESC, id DESC`

	rows := []*domain.Backlink{}
	if err := r.db.SelectContext(ctx, &rows, query, siteID); err != nil {
		return nil, fmt.Errorf("failed to list backlinks: %w", err)
	}
	return rows, nil
}

// ListByStatus returns a site's backlinks in one status, most recently seen first.
// limit <= 0 returns all rows.
func (r *BacklinkRepository) ListByStatus(
	ctx context.Context, siteID int64, status domain.BacklinkStatus, limit int,
) ([]*domain.Backlink, error) {
	query := `
		SELECT ` + backlinkSelectColumns + `
		FROM backlinks
		WHERE site_id = $1 AND status = $2
		ORDER BY last_seen_at DESC, id DESC
	`
	args := []any{siteID, status}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows := []*domain.Backlink{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list backlinks by status: %w", err)
	}
	return rows, nil
}

// Stats counts a site's backlinks by status. NewThisMonth counts non-lost
// backlinks first detected within the last 30 days of now.
func (r *BacklinkRepository) Stats(ctx context.Context, siteID int64, now time.Time) (*domain.BacklinkStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'active') AS active,
			COUNT(*) FILTER (WHERE status = 'lost') AS lost,
			COUNT(*) FILTER (WHERE status IN ('new', 'active') AND first_detected_at >= $2) AS new_this_month
		FROM backlinks
		WHERE site_id = $1
	`

	var stats domain.BacklinkStats
	if err := r.db.GetContext(ctx, &stats, query, siteID, now.Add(-recentWindow)); err != nil {
		return nil, fmt.Errorf("failed to get backlink stats: %w", err)
	}
	return &stats, nil
}
