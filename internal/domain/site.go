package domain

import "time"

// Site is a tracked web property. Domain is the natural key used by every probe.
type Site struct {
	ID          int64     `db:"id"           json:"id"`
	Domain      string    `db:"domain"       json:"domain"`
	Name        string    `db:"name"         json:"name"`
	ListingName *string   `db:"listing_name" json:"listing_name,omitempty"`
	ListingCity *string   `db:"listing_city" json:"listing_city,omitempty"`
	Active      bool      `db:"active"       json:"active"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

// HasListingTarget reports whether the site carries a known business name and city,
// which selects targeted listing lookup over automatic discovery.
func (s *Site) HasListingTarget() bool {
	return s.ListingName != nil && *s.ListingName != "" &&
		s.ListingCity != nil && *s.ListingCity != ""
}

// Keyword is a search phrase owned by exactly one site.
type Keyword struct {
	ID        int64     `db:"id"         json:"id"`
	SiteID    int64     `db:"site_id"    json:"site_id"`
	Keyword   string    `db:"keyword"    json:"keyword"`
	Active    bool      `db:"active"     json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
