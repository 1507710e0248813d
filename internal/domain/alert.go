package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// AlertType identifies the rule that produced an alert.
type AlertType string

// Alert types.
const (
	AlertTypePositionDrop  AlertType = "position_drop"
	AlertTypeListingLost   AlertType = "listing_lost"
	AlertTypeBacklinksLost AlertType = "backlink_lost"
)

// Severity is an alert's urgency.
type Severity string

// Severities.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Alert is a stored notification. Only the Read flag changes after creation.
type Alert struct {
	ID        int64         `json:"id"`
	SiteID    *int64        `json:"site_id"`
	Type      AlertType     `json:"alert_type"`
	Severity  Severity      `json:"severity"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Metadata  AlertMetadata `json:"metadata"`
	Read      bool          `json:"read"`
	CreatedAt time.Time     `json:"created_at"`
	SiteName  *string       `json:"site_name,omitempty"`
}

// AlertMetadata is the type-specific context carried by an alert.
type AlertMetadata interface {
	AlertType() AlertType
}

// PositionDropMetadata describes a ranking regression.
type PositionDropMetadata struct {
	Keyword          string `json:"keyword"          mapstructure:"keyword"`
	PreviousPosition int    `json:"previousPosition" mapstructure:"previousPosition"`
	CurrentPosition  int    `json:"currentPosition"  mapstructure:"currentPosition"`
	Drop             int    `json:"drop"             mapstructure:"drop"`
}

// AlertType implements AlertMetadata.
func (PositionDropMetadata) AlertType() AlertType { return AlertTypePositionDrop }

// ListingLostMetadata describes a listing that disappeared.
type ListingLostMetadata struct {
	BusinessName *string `json:"businessName" mapstructure:"businessName"`
	City         *string `json:"city"         mapstructure:"city"`
}

// AlertType implements AlertMetadata.
func (ListingLostMetadata) AlertType() AlertType { return AlertTypeListingLost }

// BacklinksLostMetadata lists the backlinks that vanished in one scrape.
type BacklinksLostMetadata struct {
	Count int           `json:"count" mapstructure:"count"`
	Lost  []BacklinkRef `json:"lost"  mapstructure:"lost"`
}

// AlertType implements AlertMetadata.
func (BacklinksLostMetadata) AlertType() AlertType { return AlertTypeBacklinksLost }

// RawMetadata holds metadata of an alert type this build does not know.
type RawMetadata struct {
	Type   AlertType `json:"-"`
	Fields JSONBMap  `json:"fields"`
}

// AlertType implements AlertMetadata.
func (m RawMetadata) AlertType() AlertType { return m.Type }

// MarshalJSON emits the raw fields unchanged.
func (m RawMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(m.Fields))
}

// EncodeAlertMetadata serializes metadata for storage.
func EncodeAlertMetadata(meta AlertMetadata) (JSONBMap, error) {
	if meta == nil {
		return JSONBMap{}, nil
	}
	if raw, ok := meta.(RawMetadata); ok {
		return raw.Fields, nil
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s metadata: %w", meta.AlertType(), err)
	}

	var fields JSONBMap
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to flatten %s metadata: %w", meta.AlertType(), err)
	}
	return fields, nil
}

// DecodeAlertMetadata converts stored metadata back into the struct for its alert type.
func DecodeAlertMetadata(alertType AlertType, fields JSONBMap) (AlertMetadata, error) {
	var target AlertMetadata
	switch alertType {
	case AlertTypePositionDrop:
		target = &PositionDropMetadata{}
	case AlertTypeListingLost:
		target = &ListingLostMetadata{}
	case AlertTypeBacklinksLost:
		target = &BacklinksLostMetadata{}
	default:
		return RawMetadata{Type: alertType, Fields: fields}, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]any(fields)); err != nil {
		return nil, fmt.Errorf("failed to decode %s metadata: %w", alertType, err)
	}

	switch m := target.(type) {
	case *PositionDropMetadata:
		return *m, nil
	case *ListingLostMetadata:
		return *m, nil
	case *BacklinksLostMetadata:
		return *m, nil
	}
	return target, nil
}
