package domain

import "time"

// PositionChange is a rank movement between an observation and its predecessor.
type PositionChange struct {
	SiteName         string    `db:"site_name"`
	Keyword          string    `db:"keyword"`
	CurrentPosition  int       `db:"current_position"`
	PreviousPosition int       `db:"previous_position"`
	URL              *string   `db:"url"`
	ExecutionDate    time.Time `db:"execution_date"`
}

// BacklinkEvent is a backlink that appeared or vanished.
type BacklinkEvent struct {
	SiteName        string    `db:"site_name"`
	ReferringDomain string    `db:"referring_domain"`
	SourceURL       string    `db:"source_url"`
	Date            time.Time `db:"event_date"`
}

// ListingChange pairs a listing observation with its predecessor.
type ListingChange struct {
	SiteName            string    `db:"site_name"`
	Found               bool      `db:"found"`
	PreviousFound       bool      `db:"previous_found"`
	Rating              *float64  `db:"rating"`
	PreviousRating      *float64  `db:"previous_rating"`
	ReviewCount         *int      `db:"review_count"`
	PreviousReviewCount *int      `db:"previous_review_count"`
	ExecutionDate       time.Time `db:"execution_date"`
}

// PositionChangeStats aggregates rank movements over a window.
type PositionChangeStats struct {
	Improved int     `db:"improved" json:"improved"`
	Declined int     `db:"declined" json:"declined"`
	AvgGain  float64 `db:"avg_gain" json:"avgGain"`
	AvgLoss  float64 `db:"avg_loss" json:"avgLoss"`
}

// BacklinkChangeStats counts backlink churn over a window.
type BacklinkChangeStats struct {
	New  int `db:"new_count"  json:"new"`
	Lost int `db:"lost_count" json:"lost"`
	Net  int `db:"-"          json:"net"`
}
