// Package domain provides domain models used across the application.
package domain

import (
	"time"
)

// ExecutionType identifies what an execution run covered.
type ExecutionType string

// Execution types. Full runs cover every active site; the others target one site.
const (
	ExecutionTypeFull      ExecutionType = "full"
	ExecutionTypePositions ExecutionType = "positions"
	ExecutionTypeListing   ExecutionType = "listing"
	ExecutionTypeBacklinks ExecutionType = "backlinks"
)

// ExecutionStatus is the lifecycle state of an execution run.
type ExecutionStatus string

// Execution statuses. A run starts running and ends exactly once in completed or failed.
const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

// Execution represents one orchestrated monitoring run.
type Execution struct {
	ID     int64           `db:"id"             json:"id"`
	Type   ExecutionType   `db:"execution_type" json:"execution_type"`
	SiteID *int64          `db:"site_id"        json:"site_id,omitempty"`
	Status ExecutionStatus `db:"status"         json:"status"`

	StartedAt    time.Time  `db:"started_at"    json:"started_at"`
	CompletedAt  *time.Time `db:"completed_at"  json:"completed_at,omitempty"`
	ErrorMessage *string    `db:"error_message" json:"error_message,omitempty"`

	// Populated by joined reads only.
	SiteName *string `db:"site_name" json:"site_name,omitempty"`
}

// IsTerminal reports whether the execution has been finalized.
func (e *Execution) IsTerminal() bool {
	return e.Status == ExecutionStatusCompleted || e.Status == ExecutionStatusFailed
}
