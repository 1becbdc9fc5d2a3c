package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"StockScreener/internal/domain/models"
	"StockScreener/internal/usecase"
	applogger "StockScreener/pkg/logger"
)

type fakeFilterStore struct {
	defs  []models.FilterDefinition
	count int64
}

func (f *fakeFilterStore) Insert(_ context.Context, def *models.FilterDefinition) error {
	f.defs = append(f.defs, *def)
	return nil
}

func (f *fakeFilterStore) ListByTeam(_ context.Context, teamID string) ([]models.FilterDefinition, error) {
	out := make([]models.FilterDefinition, 0, len(f.defs))
	for _, d := range f.defs {
		if d.TeamID == teamID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeFilterStore) CountByTeam(context.Context, string) (int64, error) {
	return f.count, nil
}

func (f *fakeFilterStore) SoftDelete(_ context.Context, id, teamID string) error {
	for i, d := range f.defs {
		if d.ID == id && d.TeamID == teamID {
			f.defs = append(f.defs[:i], f.defs[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeFilterStore) SetDefault(_ context.Context, id, teamID string) error {
	for i := range f.defs {
		if f.defs[i].ID == id && f.defs[i].TeamID == teamID {
			f.defs[i].IsDefault = true
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeTeams struct{ tier models.PlanTier }

func (f fakeTeams) PlanTier(context.Context, string) (models.PlanTier, error) {
	return f.tier, nil
}

type fakeSnapshots struct{ snaps []models.Snapshot }

func (f fakeSnapshots) Latest(context.Context) ([]models.Snapshot, error) {
	return f.snaps, nil
}

func (f fakeSnapshots) Invalidate(context.Context) error { return nil }

type nopSink struct{}

func (nopSink) Record(context.Context, models.ActivityEntry) error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordScreen(int, int, float64) {}
func (nopMetrics) RecordStoreOp(string, float64)  {}
func (nopMetrics) RecordActivity(string)          {}
func (nopMetrics) RecordError(string)             {}

func newTestServer(t *testing.T, store *fakeFilterStore, tier models.PlanTier) *echo.Echo {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	snaps := fakeSnapshots{}
	presets := usecase.NewPresetService(store, fakeTeams{tier: tier}, nopSink{}, nopMetrics{}, l)
	screens := usecase.NewScreenService(snaps, store, nopMetrics{}, l)
	h := NewScreenerEchoHandler(l, screens, presets, snaps)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, target, body string, identity bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if identity {
		req.Header.Set(HeaderUserID, "user-1")
		req.Header.Set(HeaderTeamID, "team-1")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMissingIdentityHeadersRejected(t *testing.T) {
	e := newTestServer(t, &fakeFilterStore{}, models.TierBase)
	rec := doRequest(e, http.MethodGet, "/api/stocks", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("envelope status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "401") {
		t.Fatalf("expected unauthorized envelope, got %s", rec.Body.String())
	}
}

func TestSaveFilterCreated(t *testing.T) {
	store := &fakeFilterStore{}
	e := newTestServer(t, store, models.TierBase)

	rec := doRequest(e, http.MethodPost, "/api/filters",
		`{"name":"oversold","maxRSI14":"30","minVolume":"1000000"}`, true)
	if !strings.Contains(rec.Body.String(), "201") {
		t.Fatalf("expected created envelope, got %s", rec.Body.String())
	}
	if len(store.defs) != 1 {
		t.Fatalf("expected one stored definition, got %d", len(store.defs))
	}
	if store.defs[0].TeamID != "team-1" || store.defs[0].UserID != "user-1" {
		t.Fatalf("identity not propagated: %+v", store.defs[0])
	}
}

func TestSaveFilterValidationErrors(t *testing.T) {
	e := newTestServer(t, &fakeFilterStore{}, models.TierBase)

	rec := doRequest(e, http.MethodPost, "/api/filters",
		`{"name":"bad","maxRSI14":"not-a-number"}`, true)
	body := rec.Body.String()
	if !strings.Contains(body, "400") {
		t.Fatalf("expected bad request envelope, got %s", body)
	}
	if !strings.Contains(body, "MaxRSI14") {
		t.Fatalf("expected offending field in body, got %s", body)
	}
}

func TestSaveFilterQuotaConflict(t *testing.T) {
	store := &fakeFilterStore{count: 3}
	e := newTestServer(t, store, models.TierBase)

	rec := doRequest(e, http.MethodPost, "/api/filters", `{"name":"fourth"}`, true)
	body := rec.Body.String()
	if !strings.Contains(body, "ERR_QUOTA_EXCEEDED") {
		t.Fatalf("expected quota error, got %s", body)
	}
	if !strings.Contains(body, "409") {
		t.Fatalf("expected conflict status in envelope, got %s", body)
	}
}

func TestDeleteUnknownFilterNotFound(t *testing.T) {
	e := newTestServer(t, &fakeFilterStore{}, models.TierBase)

	rec := doRequest(e, http.MethodDelete, "/api/filters/missing", "", true)
	if !strings.Contains(rec.Body.String(), "404") {
		t.Fatalf("expected not found envelope, got %s", rec.Body.String())
	}
}

func TestScreenRejectsMalformedFilterID(t *testing.T) {
	e := newTestServer(t, &fakeFilterStore{}, models.TierBase)

	rec := doRequest(e, http.MethodGet, "/api/stocks?filter_id=not-a-uuid", "", true)
	if !strings.Contains(rec.Body.String(), "400") {
		t.Fatalf("expected bad request envelope, got %s", rec.Body.String())
	}
}

func TestRevalidateNoContent(t *testing.T) {
	e := newTestServer(t, &fakeFilterStore{}, models.TierBase)

	rec := doRequest(e, http.MethodPost, "/api/revalidate", "", true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
