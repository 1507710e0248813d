package domain

import "time"

// PositionObservation is one ranking measurement for a (site, keyword) pair.
// A nil Position means the site was not found in the result set.
type PositionObservation struct {
	ID            int64     `db:"id"             json:"id"`
	SiteID        int64     `db:"site_id"        json:"site_id"`
	KeywordID     int64     `db:"keyword_id"     json:"keyword_id"`
	PreviousID    *int64    `db:"previous_id"    json:"previous_id,omitempty"`
	Position      *int      `db:"position"       json:"position"`
	URL           *string   `db:"url"            json:"url"`
	SearchQuery   string    `db:"search_query"   json:"search_query"`
	ExecutionDate time.Time `db:"execution_date" json:"execution_date"`
	RawHTML       *string   `db:"raw_html"       json:"raw_html,omitempty"`
	ErrorMessage  *string   `db:"error_message"  json:"error_message,omitempty"`

	// Populated by joined reads only.
	Keyword *string `db:"keyword" json:"keyword,omitempty"`
}

// Degraded reports whether the observation records a failed probe rather than a measurement.
func (o *PositionObservation) Degraded() bool {
	return o.ErrorMessage != nil
}

// ListingObservation is one business-listing measurement for a site.
type ListingObservation struct {
	ID            int64     `db:"id"             json:"id"`
	SiteID        int64     `db:"site_id"        json:"site_id"`
	PreviousID    *int64    `db:"previous_id"    json:"previous_id,omitempty"`
	Found         bool      `db:"found"          json:"found"`
	BusinessName  *string   `db:"business_name"  json:"business_name"`
	Category      *string   `db:"category"       json:"category"`
	Rating        *float64  `db:"rating"         json:"rating"`
	ReviewCount   *int      `db:"review_count"   json:"review_count"`
	WebsiteURL    *string   `db:"website_url"    json:"website_url"`
	ExecutionDate time.Time `db:"execution_date" json:"execution_date"`
	RawHTML       *string   `db:"raw_html"       json:"raw_html,omitempty"`
	ErrorMessage  *string   `db:"error_message"  json:"error_message,omitempty"`
}

// Degraded reports whether the observation records a failed probe rather than a measurement.
func (o *ListingObservation) Degraded() bool {
	return o.ErrorMessage != nil
}
