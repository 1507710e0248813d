package database

import (
	"database/sql"
	"errors"
)

// Sentinel errors returned by repositories.
var (
	ErrSiteNotFound        = errors.New("site not found")
	ErrKeywordNotFound     = errors.New("keyword not found")
	ErrAlertNotFound       = errors.New("alert not found")
	ErrExecutionNotFound   = errors.New("execution not found")
	ErrExecutionFinalized  = errors.New("execution already finalized")
	ErrObservationNotFound = errors.New("observation not found")
)

// execRequireRows validates that an ExecContext result affected at least one row.
// Returns err if non-nil, or notFoundErr if rowsAffected is 0.
func execRequireRows(result sql.Result, err, notFoundErr error) error {
	if err != nil {
		return err
	}
	n, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return affectedErr
	}
	if n == 0 {
		return notFoundErr
	}
	return nil
}

// getOrNotFound maps sql.ErrNoRows to notFoundErr.
func getOrNotFound(err, notFoundErr error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}
	return err
}
