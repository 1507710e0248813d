package domain

import "time"

// BacklinkStatus is the tracking state of a backlink.
type BacklinkStatus string

// Backlink statuses.
const (
	BacklinkStatusNew    BacklinkStatus = "new"
	BacklinkStatusActive BacklinkStatus = "active"
	BacklinkStatusLost   BacklinkStatus = "lost"
)

// Valid reports whether s is a known status.
func (s BacklinkStatus) Valid() bool {
	switch s {
	case BacklinkStatusNew, BacklinkStatusActive, BacklinkStatusLost:
		return true
	}
	return false
}

// Backlink is a durable third-party page linking to a site.
// At most one row exists per (site, referring domain, source URL).
type Backlink struct {
	ID              int64          `db:"id"                json:"id"`
	SiteID          int64          `db:"site_id"           json:"site_id"`
	ReferringDomain string         `db:"referring_domain"  json:"referring_domain"`
	SourceURL       string         `db:"source_url"        json:"source_url"`
	Title           *string        `db:"title"             json:"title,omitempty"`
	Status          BacklinkStatus `db:"status"            json:"status"`
	FirstDetectedAt time.Time      `db:"first_detected_at" json:"first_detected_at"`
	LastSeenAt      time.Time      `db:"last_seen_at"      json:"last_seen_at"`
	LostAt          *time.Time     `db:"lost_at"           json:"lost_at,omitempty"`
}

// BacklinkRef identifies a backlink by its composite key.
type BacklinkRef struct {
	ReferringDomain string `json:"referringDomain" mapstructure:"referringDomain"`
	SourceURL       string `json:"sourceUrl"       mapstructure:"sourceUrl"`
	Title           string `json:"title,omitempty" mapstructure:"title"`
}

// Key returns the identity used for set comparison.
func (r BacklinkRef) Key() string {
	return r.ReferringDomain + "|" + r.SourceURL
}

// BacklinkChanges is the result of comparing a fresh scrape with tracked backlinks.
type BacklinkChanges struct {
	New           []BacklinkRef `json:"new"`
	Lost          []BacklinkRef `json:"lost"`
	Unchanged     []BacklinkRef `json:"unchanged"`
	Total         int           `json:"total"`
	PreviousTotal int           `json:"previousTotal"`
}

// BacklinkStats summarizes a site's backlink table.
type BacklinkStats struct {
	Total        int `db:"total"          json:"total"`
	Active       int `db:"active"         json:"active"`
	Lost         int `db:"lost"           json:"lost"`
	NewThisMonth int `db:"new_this_month" json:"newThisMonth"`
}
