// Package sites manages monitored sites and their keywords.
package sites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// ErrInvalidInput is returned when a request fails validation.
var ErrInvalidInput = errors.New("invalid input")

// Service manages sites and keywords.
type Service struct {
	sites    database.SiteRepositoryInterface
	keywords database.KeywordRepositoryInterface
	log      logger.Interface
}

// NewService creates a site service.
func NewService(
	sites database.SiteRepositoryInterface,
	keywords database.KeywordRepositoryInterface,
	log logger.Interface,
) *Service {
	return &Service{sites: sites, keywords: keywords, log: log.WithComponent("sites")}
}

// SiteInput carries the writable fields of a site.
type SiteInput struct {
	Domain      string  `json:"domain"       yaml:"domain"`
	Name        string  `json:"name"         yaml:"name"`
	ListingName *string `json:"listing_name" yaml:"listing_name"`
	ListingCity *string `json:"listing_city" yaml:"listing_city"`
	Active      *bool   `json:"active"       yaml:"active"`
}

func (in SiteInput) validate() error {
	if strings.TrimSpace(in.Domain) == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

func (in SiteInput) apply(site *domain.Site) {
	site.Domain = NormalizeDomain(in.Domain)
	site.Name = strings.TrimSpace(in.Name)
	site.ListingName = blankToNil(in.ListingName)
	site.ListingCity = blankToNil(in.ListingCity)
	site.Active = in.Active == nil || *in.Active
}

// List returns the active sites.
func (s *Service) List(ctx context.Context) ([]*domain.Site, error) {
	return s.sites.List(ctx, true)
}

// ListAll returns every site, active or not.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Site, error) {
	return s.sites.List(ctx, false)
}

// Get returns one site.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Site, error) {
	return s.sites.GetByID(ctx, id)
}

// Create adds a site.
func (s *Service) Create(ctx context.Context, in SiteInput) (*domain.Site, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	site := &domain.Site{}
	in.apply(site)

	if err := s.sites.Create(ctx, site); err != nil {
		return nil, err
	}
	s.log.Info("Site created", "site_id", site.ID, "domain", site.Domain)
	return site, nil
}

// Update overwrites a site. An omitted active flag reactivates the site.
func (s *Service) Update(ctx context.Context, id int64, in SiteInput) (*domain.Site, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	site, err := s.sites.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(site)

	if err = s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	s.log.Info("Site updated", "site_id", site.ID)
	return site, nil
}

// Delete removes a site and, through the schema, its history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.sites.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Site deleted", "site_id", id)
	return nil
}

// Keywords returns the active keywords of a site.
func (s *Service) Keywords(ctx context.Context, siteID int64) ([]*domain.Keyword, error) {
	if _, err := s.sites.GetByID(ctx, siteID); err != nil {
		return nil, err
	}
	return s.keywords.ListBySite(ctx, siteID, true)
}

// AddKeyword attaches a new active keyword to a site.
func (s *Service) AddKeyword(ctx context.Context, siteID int64, text string) (*domain.Keyword, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: keyword is required", ErrInvalidInput)
	}
	if _, err := s.sites.GetByID(ctx, siteID); err != nil {
		return nil, err
	}

	kw := &domain.Keyword{SiteID: siteID, Keyword: text, Active: true}
	if err := s.keywords.Create(ctx, kw); err != nil {
		return nil, err
	}
	s.log.Info("Keyword created", "site_id", siteID, "keyword", text)
	return kw, nil
}

// UpdateKeyword changes a keyword's text and active flag. A nil active keeps it active.
func (s *Service) UpdateKeyword(ctx context.Context, siteID, id int64, text string, active *bool) (*domain.Keyword, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: keyword is required", ErrInvalidInput)
	}

	kw := &domain.Keyword{ID: id, SiteID: siteID, Keyword: text, Active: active == nil || *active}
	if err := s.keywords.Update(ctx, kw); err != nil {
		return nil, err
	}
	return kw, nil
}

// DeleteKeyword removes a keyword from a site.
func (s *Service) DeleteKeyword(ctx context.Context, siteID, id int64) error {
	return s.keywords.Delete(ctx, siteID, id)
}

// SeedKeywords gives every active site without keywords one keyword derived
// from its domain, and returns how many were created.
func (s *Service) SeedKeywords(ctx context.Context) (int, error) {
	bare, err := s.sites.ListActiveWithoutKeywords(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed keywords: %w", err)
	}

	created := 0
	for _, site := range bare {
		text := SeedKeyword(site.Domain)
		if text == "" {
			continue
		}
		kw := &domain.Keyword{SiteID: site.ID, Keyword: text, Active: true}
		if err = s.keywords.Create(ctx, kw); err != nil {
			return created, fmt.Errorf("seed keyword for %s: %w", site.Domain, err)
		}
		created++
		s.log.Info("Seeded keyword", "site_id", site.ID, "keyword", text)
	}
	return created, nil
}

// SeedKeyword derives a keyword from a domain: its first label with dashes as spaces.
func SeedKeyword(siteDomain string) string {
	label, _, _ := strings.Cut(NormalizeDomain(siteDomain), ".")
	return strings.TrimSpace(strings.ReplaceAll(label, "-", " "))
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
