package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

const siteSelectColumns = `id, domain, name, listing_name, listing_city, active, created_at, updated_at`

// SiteRepository handles database operations for sites.
type SiteRepository struct {
	db *sqlx.DB
}

// NewSiteRepository creates a new site repository.
func NewSiteRepository(db *sqlx.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// Create inserts a site and fills its generated fields.
func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) error {
	query := `
		INSERT INTO sites (domain, name, listing_name, listing_city, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		site.Domain, site.Name, site.ListingName, site.ListingCity, site.Active,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	return nil
}

// GetByID retrieves a site by its ID.
func (r *SiteRepository) GetByID(ctx context.Context, id int64) (*domain.Site, error) {
	var site domain.Site
	query := `SELECT ` + siteSelectColumns + ` FROM sites WHERE id = $1`

	if err := r.db.GetContext(ctx, &site, query, id); err != nil {
		return nil, fmt.Errorf("failed to get site %d: %w", id, getOrNotFound(err, ErrSiteNotFound))
	}

	return &site, nil
}

// List returns sites ordered by name. activeOnly restricts to monitored sites.
func (r *SiteRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Site, error) {
	query := `SELECT ` + siteSelectColumns + ` FROM sites`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name ASC, id ASC`

	sites := []*domain.Site{}
	if err := r.db.SelectContext(ctx, &sites, query); err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	return sites, nil
}

// ListActiveWithoutKeywords returns active sites that own no keyword at all.
func (r *SiteRepository) ListActiveWithoutKeywords(ctx context.Context) ([]*domain.Site, error) {
	query := `
		SELECT ` + siteSelectColumns + `
		FROM sites s
		WHERE s.active = TRUE
		  AND NOT EXISTS (SELECT 1 FROM keywords k WHERE k.site_id = s.id)
		ORDER BY s.id ASC
	`

	sites := []*domain.Site{}
	if err := r.db.SelectContext(ctx, &sites, query); err != nil {
		return nil, fmt.Errorf("failed to list sites without keywords: %w", err)
	}

	return sites, nil
}

// Domains returns every stored domain.
func (r *SiteRepository) Domains(ctx context.Context) ([]string, error) {
	domains := []string{}
	if err := r.db.SelectContext(ctx, &domains, `SELECT domain FROM sites`); err != nil {
		return nil, fmt.Errorf("failed to list site domains: %w", err)
	}
	return domains, nil
}

// Update overwrites a site's mutable fields.
func (r *SiteRepository) Update(ctx context.Context, site *domain.Site) error {
	query := `
		UPDATE sites
		SET domain = $1, name = $2, listing_name = $3, listing_city = $4,
		    active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		site.Domain, site.Name, site.ListingName, site.ListingCity, site.Active, site.ID,
	).Scan(&site.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update site %d: %w", site.ID, getOrNotFound(err, ErrSiteNotFound))
	}

	return nil
}

// Delete removes a site and, by cascade, its keywords and history.
func (r *SiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err = execRequireRows(result, err, ErrSiteNotFound); err != nil {
		return fmt.Errorf("failed to delete site %d: %w", id, err)
	}
	return nil
}
