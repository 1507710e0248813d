package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionRepository_StartAndFinish(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewExecutionRepository(db)
	started := time.Now()
	finished := started.Add(time.Minute)

	mock.ExpectQuery("INSERT INTO executions").
		WithArgs("full", nil, "running", started).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec("UPDATE executions .+ WHERE id = \\$4 AND status = 'running'").
		WithArgs("completed", finished, nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	exec, err := repo.Start(context.Background(), domain.ExecutionTypeFull, nil, started)
	require.NoError(t, err)
	assert.Equal(t, int64(42), exec.ID)
	assert.Equal(t, domain.ExecutionStatusRunning, exec.Status)

	require.NoError(t, repo.Finish(context.Background(), exec.ID, domain.ExecutionStatusCompleted, nil, finished))

	expectationsMet(t, mock)
}

func TestExecutionRepository_Finish_OnlyOnce(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewExecutionRepository(db)

	mock.ExpectExec("UPDATE executions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Finish(context.Background(), 42, domain.ExecutionStatusFailed, ptr("boom"), time.Now())
	assert.True(t, errors.Is(err, database.ErrExecutionFinalized))

	expectationsMet(t, mock)
}

func TestExecutionRepository_FailRunning(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewExecutionRepository(db)
	now := time.Now()

	mock.ExpectExec("UPDATE executions .+ WHERE status = 'running'").
		WithArgs(now, "interrupted").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.FailRunning(context.Background(), "interrupted", now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	expectationsMet(t, mock)
}

func TestExecutionRepository_Recent_DefaultLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewExecutionRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM executions e LEFT JOIN sites s .+ LIMIT \\$1").
		WithArgs(database.DefaultRecentExecutions).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "execution_type", "site_id", "status", "started_at", "completed_at", "error_message", "site_name",
		}).AddRow(1, "positions", 3, "completed", now, now, nil, "Example"))

	rows, err := repo.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Example", *rows[0].SiteName)
	assert.True(t, rows[0].IsTerminal())

	expectationsMet(t, mock)
}
