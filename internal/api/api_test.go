package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/api"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/server"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/report"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/sites"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeSiteService struct {
	api.SiteService
	created sites.SiteInput
}

func (f *fakeSiteService) Get(_ context.Context, id int64) (*domain.Site, error) {
	if id != 1 {
		return nil, database.ErrSiteNotFound
	}
	return &domain.Site{ID: 1, Domain: "example.com", Name: "Example", Active: true}, nil
}

func (f *fakeSiteService) Create(_ context.Context, in sites.SiteInput) (*domain.Site, error) {
	if in.Domain == "" {
		return nil, sites.ErrInvalidInput
	}
	f.created = in
	return &domain.Site{ID: 2, Domain: in.Domain, Name: in.Name, Active: true}, nil
}

func (f *fakeSiteService) BulkImport(_ context.Context, urls []string) (*sites.ImportReport, error) {
	return &sites.ImportReport{Summary: sites.ImportSummary{Total: len(urls), Created: len(urls)}}, nil
}

type fakeReports struct {
	api.ReportService
}

func (fakeReports) BacklinksByStatus(_ context.Context, _ int64, status domain.BacklinkStatus) ([]*domain.Backlink, error) {
	if !status.Valid() {
		return nil, report.ErrInvalidStatus
	}
	return []*domain.Backlink{}, nil
}

func (fakeReports) RecentChanges(_ context.Context, days int) ([]report.Change, error) {
	return []report.Change{{Type: report.ChangePosition, Change: float64(days)}}, nil
}

type fakeAlerts struct {
	database.AlertRepositoryInterface
	filter database.AlertFilter
}

func (f *fakeAlerts) List(_ context.Context, filter database.AlertFilter) ([]*domain.Alert, error) {
	f.filter = filter
	return []*domain.Alert{}, nil
}

func (f *fakeAlerts) MarkRead(_ context.Context, id int64) error {
	if id != 5 {
		return database.ErrAlertNotFound
	}
	return nil
}

type fakeRun struct {
	exec *domain.Execution
	done chan struct{}
}

func (r *fakeRun) Execution() *domain.Execution { return r.exec }

func (r *fakeRun) Execute(context.Context) (*monitor.RunResult, error) {
	close(r.done)
	return &monitor.RunResult{Success: true, ExecutionID: r.exec.ID}, nil
}

type fakeStarter struct {
	err      error
	run      *fakeRun
	execType domain.ExecutionType
	siteID   int64
	running  bool
}

func (f *fakeStarter) Running() bool { return f.running }

func (f *fakeStarter) Start(_ context.Context, execType domain.ExecutionType, siteID int64) (api.PendingRun, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.execType, f.siteID = execType, siteID
	f.run = &fakeRun{exec: &domain.Execution{ID: 77, Type: execType}, done: make(chan struct{})}
	return f.run, nil
}

type testServer struct {
	router     *gin.Engine
	sites      *fakeSiteService
	alerts     *fakeAlerts
	starter    *fakeStarter
	monitoring *api.MonitoringHandler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.NewNoOp()
	ts := &testServer{sites: &fakeSiteService{}, alerts: &fakeAlerts{}, starter: &fakeStarter{}}
	ts.monitoring = api.NewMonitoringHandler(context.Background(), ts.starter, log)
	ts.router = api.SetupRouter(api.RouterParams{
		Config: server.NewConfig(),
		Handlers: api.Handlers{
			Sites:      api.NewSitesHandler(ts.sites),
			Monitoring: ts.monitoring,
			History:    api.NewHistoryHandler(fakeReports{}),
			Alerts:     api.NewAlertsHandler(ts.alerts),
		},
		Gatherer: prometheus.NewRegistry(),
		Logger:   log,
	})
	return ts
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = ts.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSites_GetAndCreate(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/sites/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"domain":"example.com"`)

	w = ts.do(http.MethodGet, "/api/sites/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodGet, "/api/sites/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/sites", map[string]any{"domain": "acme.fr", "name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "acme.fr", ts.sites.created.Domain)

	w = ts.do(http.MethodPost, "/api/sites", map[string]any{"name": "No domain"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSites_BulkImport(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/sites/bulk", map[string]any{"urls": []string{"a.com", "b.com"}})
	require.Equal(t, http.StatusOK, w.Code)

	var got sites.ImportReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Summary.Created)

	w = ts.do(http.MethodPost, "/api/sites/bulk", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonitoring_Accepted(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/monitoring/listing/3", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"executionId":77`)

	<-ts.starter.run.done
	ts.monitoring.Wait()
	assert.Equal(t, domain.ExecutionTypeListing, ts.starter.execType)
	assert.Equal(t, int64(3), ts.starter.siteID)
}

func TestMonitoring_Status(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/monitoring/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"running":false}`, w.Body.String())

	ts.starter.running = true
	w = ts.do(http.MethodGet, "/api/monitoring/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"running":true}`, w.Body.String())
}

func TestMonitoring_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		path   string
		status int
	}{
		{"run in progress", monitor.ErrRunInProgress, "/api/monitoring/run", http.StatusConflict},
		{"unknown site", database.ErrSiteNotFound, "/api/monitoring/positions/9", http.StatusNotFound},
		{"core failure", errors.New("db down"), "/api/monitoring/backlinks/1", http.StatusInternalServerError},
		{"bad id", nil, "/api/monitoring/positions/x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t)
			ts.starter.err = tt.err
			w := ts.do(http.MethodPost, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHistory_BacklinkStatus(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/history/backlinks/1/status/lost", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/history/backlinks/1/status/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChanges_DefaultDays(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/changes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"change":7`)

	w = ts.do(http.MethodGet, "/api/changes?days=30", nil)
	assert.Contains(t, w.Body.String(), `"change":30`)
}

func TestAlerts(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/alerts?read=false&siteId=4&severity=high", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ts.alerts.filter.Read)
	assert.False(t, *ts.alerts.filter.Read)
	assert.Equal(t, int64(4), *ts.alerts.filter.SiteID)
	assert.Equal(t, domain.SeverityHigh, *ts.alerts.filter.Severity)
	assert.Equal(t, 50, ts.alerts.filter.Limit)

	w = ts.do(http.MethodGet, "/api/alerts?severity=urgent", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPatch, "/api/alerts/5/read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPatch, "/api/alerts/6/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
