package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockScreener/internal/domain/models"
	applogger "StockScreener/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// fakeFilterStore keeps definitions in insertion order and emulates the
// transactional clear-and-set the real store performs.
type fakeFilterStore struct {
	defs    []models.FilterDefinition
	failOps map[string]error
}

func (f *fakeFilterStore) fail(op string) error {
	if f.failOps == nil {
		return nil
	}
	return f.failOps[op]
}

func (f *fakeFilterStore) Insert(_ context.Context, def *models.FilterDefinition) error {
	if err := f.fail("insert"); err != nil {
		return err
	}
	f.defs = append(f.defs, *def)
	return nil
}

func (f *fakeFilterStore) ListByTeam(_ context.Context, teamID string) ([]models.FilterDefinition, error) {
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	out := make([]models.FilterDefinition, 0, len(f.defs))
	for _, d := range f.defs {
		if d.TeamID == teamID && d.DeletedAt == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeFilterStore) CountByTeam(ctx context.Context, teamID string) (int64, error) {
	if err := f.fail("count"); err != nil {
		return 0, err
	}
	defs, err := f.ListByTeam(ctx, teamID)
	return int64(len(defs)), err
}

func (f *fakeFilterStore) SoftDelete(_ context.Context, id, teamID string) error {
	if err := f.fail("delete"); err != nil {
		return err
	}
	for i := range f.defs {
		if f.defs[i].ID == id && f.defs[i].TeamID == teamID && f.defs[i].DeletedAt == nil {
			now := time.Now()
			f.defs[i].DeletedAt = &now
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeFilterStore) SetDefault(_ context.Context, id, teamID string) error {
	if err := f.fail("setdefault"); err != nil {
		return err
	}
	target := -1
	for i := range f.defs {
		if f.defs[i].ID == id && f.defs[i].TeamID == teamID && f.defs[i].DeletedAt == nil {
			target = i
			break
		}
	}
	if target == -1 {
		return models.ErrNotFound
	}
	for i := range f.defs {
		if f.defs[i].TeamID == teamID {
			f.defs[i].IsDefault = i == target
		}
	}
	return nil
}

type fakeTeams struct {
	tier models.PlanTier
	err  error
}

func (f *fakeTeams) PlanTier(context.Context, string) (models.PlanTier, error) {
	return f.tier, f.err
}

type fakeSink struct {
	entries []models.ActivityEntry
	err     error
}

func (f *fakeSink) Record(_ context.Context, e models.ActivityEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordScreen(int, int, float64) {}
func (nopMetrics) RecordStoreOp(string, float64)  {}
func (nopMetrics) RecordActivity(string)          {}
func (nopMetrics) RecordError(string)             {}

func newPresetFixture(t *testing.T, tier models.PlanTier) (*PresetService, *fakeFilterStore, *fakeSink) {
	t.Helper()
	store := &fakeFilterStore{}
	sink := &fakeSink{}
	svc := NewPresetService(store, &fakeTeams{tier: tier}, sink, nopMetrics{}, testLogger(t))
	return svc, store, sink
}

func validDraft(name string) models.FilterDraft {
	return models.FilterDraft{Name: name, MaxRSI14: "60", MinVolume: "1000000"}
}

func seedFilters(t *testing.T, svc *PresetService, team string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := svc.Create(context.Background(), validDraft("preset"), "user-1", team)
		if err != nil {
			t.Fatalf("seed create %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestCreateReturnsIDAndRecordsActivity(t *testing.T) {
	svc, store, sink := newPresetFixture(t, models.TierBase)

	id, err := svc.Create(context.Background(), validDraft("oversold"), "user-1", "team-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a generated id")
	}
	if len(store.defs) != 1 || store.defs[0].Name != "oversold" {
		t.Fatalf("definition not persisted: %+v", store.defs)
	}
	if store.defs[0].Bounds.MaxRSI14 == nil || store.defs[0].Bounds.MaxRSI14.String() != "60" {
		t.Fatalf("threshold not carried: %+v", store.defs[0].Bounds)
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != models.ActivityAddFilter {
		t.Fatalf("expected one ADD_FILTER activity, got %+v", sink.entries)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, store, _ := newPresetFixture(t, models.TierBase)

	_, err := svc.Create(context.Background(), models.FilterDraft{Name: "  ", MaxRSI14: "abc"}, "u", "team-1")
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["name"]; !ok {
		t.Fatalf("missing name error: %v", verr.Fields)
	}
	if _, ok := verr.Fields["maxRSI14"]; !ok {
		t.Fatalf("missing maxRSI14 error: %v", verr.Fields)
	}
	if len(store.defs) != 0 {
		t.Fatalf("invalid draft must not persist")
	}
}

func TestCreateQuotaBaseTier(t *testing.T) {
	svc, store, _ := newPresetFixture(t, models.TierBase)
	seedFilters(t, svc, "team-1", 2)

	// at cap-1 the create succeeds
	if _, err := svc.Create(context.Background(), validDraft("third"), "u", "team-1"); err != nil {
		t.Fatalf("create at cap-1: %v", err)
	}

	// at cap it fails and nothing is stored
	_, err := svc.Create(context.Background(), validDraft("fourth"), "u", "team-1")
	var qerr *models.QuotaExceededError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if qerr.Limit != 3 {
		t.Fatalf("base tier limit should be 3, got %d", qerr.Limit)
	}
	if len(store.defs) != 3 {
		t.Fatalf("stored count changed on quota failure: %d", len(store.defs))
	}
}

func TestCreateQuotaPlusTier(t *testing.T) {
	svc, _, _ := newPresetFixture(t, models.TierPlus)
	seedFilters(t, svc, "team-1", 9)

	if _, err := svc.Create(context.Background(), validDraft("tenth"), "u", "team-1"); err != nil {
		t.Fatalf("create at cap-1: %v", err)
	}
	_, err := svc.Create(context.Background(), validDraft("eleventh"), "u", "team-1")
	var qerr *models.QuotaExceededError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if qerr.Limit != 10 {
		t.Fatalf("plus tier limit should be 10, got %d", qerr.Limit)
	}
}

func TestCreateQuotaIgnoresDeleted(t *testing.T) {
	svc, _, _ := newPresetFixture(t, models.TierBase)
	ids := seedFilters(t, svc, "team-1", 3)

	if err := svc.Delete(context.Background(), ids[0], "u", "team-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Create(context.Background(), validDraft("replacement"), "u", "team-1"); err != nil {
		t.Fatalf("deleted rows must not count against the quota: %v", err)
	}
}

func TestDeleteSoftDeletesAndLogs(t *testing.T) {
	svc, store, sink := newPresetFixture(t, models.TierBase)
	ids := seedFilters(t, svc, "team-1", 1)

	if err := svc.Delete(context.Background(), ids[0], "user-1", "team-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.defs[0].DeletedAt == nil {
		t.Fatalf("expected a deletion timestamp, not removal")
	}
	last := sink.entries[len(sink.entries)-1]
	if last.Action != models.ActivityDeleteFilter {
		t.Fatalf("expected DELETE_FILTER activity, got %s", last.Action)
	}
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	svc, store, _ := newPresetFixture(t, models.TierBase)
	ids := seedFilters(t, svc, "team-1", 2)
	if err := svc.SetDefault(context.Background(), ids[1], "team-1"); err != nil {
		t.Fatalf("setdefault: %v", err)
	}

	if err := svc.Delete(context.Background(), ids[0], "u", "team-1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), ids[0], "u", "team-1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
	// the other definition's default flag is untouched
	if !store.defs[1].IsDefault {
		t.Fatalf("delete of a dead id must not touch default flags")
	}
}

func TestDeleteForeignTeamIsNotFound(t *testing.T) {
	svc, _, _ := newPresetFixture(t, models.TierBase)
	ids := seedFilters(t, svc, "team-1", 1)

	if err := svc.Delete(context.Background(), ids[0], "u", "team-2"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("foreign team delete should be ErrNotFound, got %v", err)
	}
}

func TestSetDefaultExclusive(t *testing.T) {
	svc, store, _ := newPresetFixture(t, models.TierBase)
	ids := seedFilters(t, svc, "team-1", 3)

	if err := svc.SetDefault(context.Background(), ids[0], "team-1"); err != nil {
		t.Fatalf("setdefault: %v", err)
	}
	if err := svc.SetDefault(context.Background(), ids[2], "team-1"); err != nil {
		t.Fatalf("setdefault: %v", err)
	}

	defaults := 0
	for _, d := range store.defs {
		if d.IsDefault {
			defaults++
			if d.ID != ids[2] {
				t.Fatalf("wrong default: %s", d.ID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default, got %d", defaults)
	}
}

func TestSetDefaultUnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newPresetFixture(t, models.TierBase)
	seedFilters(t, svc, "team-1", 1)

	if err := svc.SetDefault(context.Background(), "missing", "team-1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestActivityFailureDoesNotFailCreate(t *testing.T) {
	store := &fakeFilterStore{}
	sink := &fakeSink{err: errors.New("sink down")}
	svc := NewPresetService(store, &fakeTeams{tier: models.TierBase}, sink, nopMetrics{}, testLogger(t))

	if _, err := svc.Create(context.Background(), validDraft("x"), "u", "team-1"); err != nil {
		t.Fatalf("activity failure must not fail the create: %v", err)
	}
	if len(store.defs) != 1 {
		t.Fatalf("definition should still be persisted")
	}
}

func TestStoreFailureIsWrapped(t *testing.T) {
	store := &fakeFilterStore{failOps: map[string]error{"insert": errors.New("connection reset")}}
	svc := NewPresetService(store, &fakeTeams{tier: models.TierBase}, &fakeSink{}, nopMetrics{}, testLogger(t))

	_, err := svc.Create(context.Background(), validDraft("x"), "u", "team-1")
	var serr *models.StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if serr.Op != "insert_filter" {
		t.Fatalf("unexpected op: %s", serr.Op)
	}
}
