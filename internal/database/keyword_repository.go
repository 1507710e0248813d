package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

const keywordSelectColumns = `id, site_id, keyword, active, created_at`

// KeywordRepository handles database operations for keywords.
type KeywordRepository struct {
	db *sqlx.DB
}

// NewKeywordRepository creates a new keyword repository.
func NewKeywordRepository(db *sqlx.DB) *KeywordRepository {
	return &KeywordRepository{db: db}
}

// Create inserts a keyword and fills its generated fields.
func (r *KeywordRepository) Create(ctx context.Context, kw *domain.Keyword) error {
	query := `
		INSERT INTO keywords (site_id, keyword, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, kw.SiteID, kw.Keyword, kw.Active).Scan(&kw.ID, &kw.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create keyword: %w", err)
	}

	return nil
}

// ListBySite returns a site's keywords in creation order.
func (r *KeywordRepository) ListBySite(ctx context.Context, siteID int64, activeOnly bool) ([]*domain.Keyword, error) {
	query := `SELECT ` + keywordSelectColumns + ` FROM keywords WHERE site_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY id ASC`

	keywords := []*domain.Keyword{}
	if err := r.db.SelectContext(ctx, &keywords, query, siteID); err != nil {
		return nil, fmt.Errorf("failed to list keywords for site %d: %w", siteID, err)
	}

	return keywords, nil
}

// Update changes a keyword's text and active flag. The keyword must belong to siteID.
func (r *KeywordRepository) Update(ctx context.Context, kw *domain.Keyword) error {
	query := `
		UPDATE keywords
		SET keyword = $1, active = $2
		WHERE id = $3 AND site_id = $4
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query, kw.Keyword, kw.Active, kw.ID, kw.SiteID).Scan(&kw.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to update keyword %d: %w", kw.ID, getOrNotFound(err, ErrKeywordNotFound))
	}

	return nil
}

// Delete removes a keyword owned by siteID.
func (r *KeywordRepository) Delete(ctx context.Context, siteID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM keywords WHERE id = $1 AND site_id = $2`, id, siteID)
	if err = execRequireRows(result, err, ErrKeywordNotFound); err != nil {
		return fmt.Errorf("failed to delete keyword %d: %w", id, err)
	}
	return nil
}
