package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// DefaultRecentExecutions is used when RecentExecutions is called without a limit.
const DefaultRecentExecutions = 10

const executionSelect = `
	SELECT e.id, e.execution_type, e.site_id, e.status, e.started_at,
	       e.completed_at, e.error_message, s.name AS site_name
	FROM executions e
	LEFT JOIN sites s ON s.id = e.site_id
`

// ExecutionRepository handles database operations for execution runs.
type ExecutionRepository struct {
	db *sqlx.DB
}

// NewExecutionRepository creates a new execution repository.
func NewExecutionRepository(db *sqlx.DB) *ExecutionRepository {
	return &ExecutionRepository{db: db}
}

// Start inserts a running execution.
func (r *ExecutionRepository) Start(
	ctx context.Context, execType domain.ExecutionType, siteID *int64, startedAt time.Time,
) (*domain.Execution, error) {
	exec := &domain.Execution{
		Type:      execType,
		SiteID:    siteID,
		Status:    domain.ExecutionStatusRunning,
		StartedAt: startedAt,
	}

	query := `
		INSERT INTO executions (execution_type, site_id, status, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query, string(execType), siteID, string(exec.Status), startedAt).Scan(&exec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create execution: %w", err)
	}

	return exec, nil
}

// Finish moves a running execution to a terminal status. It fails with
// ErrExecutionFinalized if the execution is not running anymore.
func (r *ExecutionRepository) Finish(
	ctx context.Context, id int64, status domain.ExecutionStatus, errMsg *string, completedAt time.Time,
) error {
	query := `
		UPDATE executions
		SET status = $1, completed_at = $2, error_message = $3
		WHERE id = $4 AND status = 'running'
	`

	result, err := r.db.ExecContext(ctx, query, string(status), completedAt, errMsg, id)
	if err = execRequireRows(result, err, ErrExecutionFinalized); err != nil {
		return fmt.Errorf("failed to finish execution %d: %w", id, err)
	}
	return nil
}

// GetByID retrieves an execution.
func (r *ExecutionRepository) GetByID(ctx context.Context, id int64) (*domain.Execution, error) {
	var exec domain.Execution
	if err := r.db.GetContext(ctx, &exec, executionSelect+` WHERE e.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get execution %d: %w", id, getOrNotFound(err, ErrExecutionNotFound))
	}
	return &exec, nil
}

// Recent returns the latest executions, newest first.
func (r *ExecutionRepository) Recent(ctx context.Context, limit int) ([]*domain.Execution, error) {
	if limit <= 0 {
		limit = DefaultRecentExecutions
	}

	rows := []*domain.Execution{}
	query := executionSelect + ` ORDER BY e.started_at DESC, e.id DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	return rows, nil
}

// FailRunning marks every running execution failed with msg. It is used at
// startup to close out runs interrupted by a crash.
func (r *ExecutionRepository) FailRunning(ctx context.Context, msg string, completedAt time.Time) (int64, error) {
	query := `
		UPDATE executions
		SET status = 'failed', completed_at = $1, error_message = $2
		WHERE status = 'running'
	`

	result, err := r.db.ExecContext(ctx, query, completedAt, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to fail running executions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
