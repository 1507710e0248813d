package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// alertRow is the storage shape of an alert; metadata stays opaque JSONB here.
type alertRow struct {
	ID        int64           `db:"id"`
	SiteID    *int64          `db:"site_id"`
	Type      string          `db:"alert_type"`
	Severity  string          `db:"severity"`
	Title     string          `db:"title"`
	Message   string          `db:"message"`
	Metadata  domain.JSONBMap `db:"metadata"`
	Read      bool            `db:"read"`
	CreatedAt time.Time       `db:"created_at"`
	SiteName  *string         `db:"site_name"`
}

func (row *alertRow) toDomain() (*domain.Alert, error) {
	alertType := domain.AlertType(row.Type)
	meta, err := domain.DecodeAlertMetadata(alertType, row.Metadata)
	if err != nil {
		return nil, err
	}
	return &domain.Alert{
		ID:        row.ID,
		SiteID:    row.SiteID,
		Type:      alertType,
		Severity:  domain.Severity(row.Severity),
		Title:     row.Title,
		Message:   row.Message,
		Metadata:  meta,
		Read:      row.Read,
		CreatedAt: row.CreatedAt,
		SiteName:  row.SiteName,
	}, nil
}

const alertSelect = `
	SELECT a.id, a.site_id, a.alert_type, a.severity, a.title, a.message,
	       a.metadata, a.read, a.created_at, s.name AS site_name
	FROM alerts a
	LEFT JOIN sites s ON s.id = a.site_id
`

// AlertFilter narrows an alert listing. Nil fields are ignored.
type AlertFilter struct {
	Read     *bool
	SiteID   *int64
	Severity *domain.Severity
	Limit    int
}

// AlertRepository handles database operations for alerts.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository creates a new alert repository.
func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create stores an alert. Metadata is serialized to JSONB here and nowhere else.
func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	meta, err := domain.EncodeAlertMetadata(alert.Metadata)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	query := `
		INSERT INTO alerts (site_id, alert_type, severity, title, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, read, created_at
	`

	err = r.db.QueryRowxContext(ctx, query,
		alert.SiteID, string(alert.Type), string(alert.Severity), alert.Title, alert.Message, meta,
	).Scan(&alert.ID, &alert.Read, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// GetByID retrieves an alert.
func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	var row alertRow
	if err := r.db.GetContext(ctx, &row, alertSelect+` WHERE a.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get alert %d: %w", id, getOrNotFound(err, ErrAlertNotFound))
	}
	return row.toDomain()
}

// List returns alerts matching filter, newest first.
func (r *AlertRepository) List(ctx context.Context, filter AlertFilter) ([]*domain.Alert, error) {
	var (
		conditions []string
		args       []any
	)
	addCondition := func(expr string, value any) {
		args = append(args, value)
		conditions = append(conditions, expr+" $"+strconv.Itoa(len(args)))
	}

	if filter.Read != nil {
		addCondition("a.read =", *filter.Read)
	}
	if filter.SiteID != nil {
		addCondition("a.site_id =", *filter.SiteID)
	}
	if filter.Severity != nil {
		addCondition("a.severity =", string(*filter.Severity))
	}

	query := alertSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.created_at DESC, a.id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows := []alertRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	alerts := make([]*domain.Alert, 0, len(rows))
	for i := range rows {
		alert, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// MarkRead sets the read flag on one alert.
func (r *AlertRepository) MarkRead(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE alerts SET read = TRUE WHERE id = $1`, id)
	if err = execRequireRows(result, err, ErrAlertNotFound); err != nil {
		return fmt.Errorf("failed to mark alert %d read: %w", id, err)
	}
	return nil
}

// MarkAllRead marks every unread alert read, optionally for one site only.
func (r *AlertRepository) MarkAllRead(ctx context.Context, siteID *int64) (int64, error) {
	query := `UPDATE alerts SET read = TRUE WHERE read = FALSE`
	args := []any{}
	if siteID != nil {
		query += ` AND site_id = $1`
		args = append(args, *siteID)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark alerts read: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// Delete removes an alert.
func (r *AlertRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err = execRequireRows(result, err, ErrAlertNotFound); err != nil {
		return fmt.Errorf("failed to delete alert %d: %w", id, err)
	}
	return nil
}

// UnreadCount counts unread alerts, optionally for one site only.
func (r *AlertRepository) UnreadCount(ctx context.Context, siteID *int64) (int, error) {
	query := `SELECT COUNT(*) FROM alerts WHERE read = FALSE`
	args := []any{}
	if siteID != nil {
		query += ` AND site_id = $1`
		args = append(args, *siteID)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}
