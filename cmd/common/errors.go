package common

import "errors"

var (
	// ErrSiteRequired is returned when a targeted command has no --site.
	ErrSiteRequired = errors.New("--site is required")

	// ErrNothingToImport is returned when import gets neither a file nor URLs.
	ErrNothingToImport = errors.New("provide --file or at least one URL")
)
