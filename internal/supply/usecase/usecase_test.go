package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/printfleet/supply-service/internal/model"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/supply"
)

type fakeJobs struct {
	jobs   map[string][]model.PrintJob
	failOn string
}

func (f *fakeJobs) ListRecentJobs(_ context.Context, companyID string, since time.Time) ([]model.PrintJob, error) {
	if companyID == f.failOn {
		return nil, errors.New("connection refused")
	}
	var out []model.PrintJob
	for _, j := range f.jobs[companyID] {
		if !j.PrintedAt.Before(since) {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeStock struct {
	papers []model.PaperType
	toners []model.TonerCartridge
}

func (f *fakeStock) ListPaperTypes(context.Context, string) ([]model.PaperType, error) {
	return f.papers, nil
}

func (f *fakeStock) ListTonerCartridges(context.Context, string) ([]model.TonerCartridge, error) {
	return f.toners, nil
}

type fakeAlertStore struct {
	unread  []model.Alert
	created []model.Alert
	read    []string
}

func (f *fakeAlertStore) ListUnread(context.Context, string) ([]model.Alert, error) {
	return f.unread, nil
}

func (f *fakeAlertStore) Create(_ context.Context, alert *model.Alert) error {
	f.created = append(f.created, *alert)
	return nil
}

func (f *fakeAlertStore) MarkRead(_ context.Context, alertID string) error {
	f.read = append(f.read, alertID)
	return nil
}

type fakeCompanies struct {
	companies []model.Company
}

func (f *fakeCompanies) ListActive(context.Context) ([]model.Company, error) {
	return f.companies, nil
}

type fakeCache struct {
	store      map[string][]byte
	sets       int
	denyLock   bool
	lockHeld   map[string]string
	lockCalls  int
	unlockHits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}, lockHeld: map[string]string{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	f.sets++
	return nil
}

func (f *fakeCache) AcquireLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	f.lockCalls++
	if f.denyLock {
		return false, nil
	}
	if _, held := f.lockHeld[key]; held {
		return false, nil
	}
	f.lockHeld[key] = value
	return true, nil
}

func (f *fakeCache) ReleaseLock(_ context.Context, key, value string) (bool, error) {
	if f.lockHeld[key] != value {
		return false, nil
	}
	delete(f.lockHeld, key)
	f.unlockHits++
	return true, nil
}

const testCompany = "c1"

// steadyFixture wires a use case over one company with a paper type consumed
// at 10 sheets/day (projects to 9 days, caution) and a black cartridge whose
// color volume projects comfortably far out (no alert).
func steadyFixture(t *testing.T, alerts *fakeAlertStore, cch supply.Cache) supply.UseCase {
	t.Helper()
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	paperID := "p1"
	var jobs []model.PrintJob
	for d := 1; d <= 7; d++ {
		jobs = append(jobs,
			model.PrintJob{CompanyID: testCompany, PaperTypeID: &paperID, ColorMode: model.ColorModeBW, PageCount: 10, PrintedAt: now.AddDate(0, 0, -d)},
			model.PrintJob{CompanyID: testCompany, ColorMode: model.ColorModeColor, PageCount: 110, PrintedAt: now.AddDate(0, 0, -d)},
		)
	}

	uc := NewSupplyUseCase(
		&fakeJobs{jobs: map[string][]model.PrintJob{testCompany: jobs}},
		&fakeStock{
			papers: []model.PaperType{{BaseModel: model.BaseModel{ID: paperID}, CompanyID: testCompany, Name: "Standard A4", Stock: 100}},
			toners: []model.TonerCartridge{{BaseModel: model.BaseModel{ID: "t1"}, CompanyID: testCompany, Name: "HP Black", Color: "black", Stock: 1}},
		},
		alerts,
		&fakeCompanies{companies: []model.Company{{BaseModel: model.BaseModel{ID: testCompany}, Name: "Acme", IsActive: true}}},
		cch,
		logger.NewNop(),
		Options{ProjectionCacheTTL: 5 * time.Minute},
	)
	uc.(*supplyUseCase).now = func() time.Time { return now }
	return uc
}

func TestGetProjectionsSortedAndComplete(t *testing.T) {
	uc := steadyFixture(t, &fakeAlertStore{}, nil)

	projections, err := uc.GetProjections(context.Background(), testCompany)
	if err != nil {
		t.Fatal(err)
	}
	if len(projections) != 2 {
		t.Fatalf("expected 2 projections, got %d: %+v", len(projections), projections)
	}

	paper, toner := projections[0], projections[1]
	if paper.Type != supply.ResourcePaper || toner.Type != supply.ResourceToner {
		t.Fatalf("expected paper before toner (more urgent first): %+v", projections)
	}
	// 100 sheets at 10*1.1/day
	if paper.DaysRemaining != 9 {
		t.Fatalf("paper days remaining = %d, want 9", paper.DaysRemaining)
	}
	if paper.Status != supply.StatusCaution {
		t.Fatalf("paper status = %s, want caution", paper.Status)
	}
	// 1 black cartridge = 2500 pages at 110*1.1/day
	if toner.DaysRemaining != 20 {
		t.Fatalf("toner days remaining = %d, want 20", toner.DaysRemaining)
	}
	if toner.EstimatedPagesPerUnit != 2500 {
		t.Fatalf("toner yield = %d, want 2500", toner.EstimatedPagesPerUnit)
	}
}

func TestGetProjectionsCaching(t *testing.T) {
	cch := newFakeCache()
	uc := steadyFixture(t, &fakeAlertStore{}, cch)

	first, err := uc.GetProjections(context.Background(), testCompany)
	if err != nil {
		t.Fatal(err)
	}
	if cch.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cch.sets)
	}

	second, err := uc.GetProjections(context.Background(), testCompany)
	if err != nil {
		t.Fatal(err)
	}
	if cch.sets != 1 {
		t.Fatalf("second read must come from cache, got %d writes", cch.sets)
	}
	if len(second) != len(first) || second[0].ResourceID != first[0].ResourceID {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestGenerateAlertsCreates(t *testing.T) {
	alerts := &fakeAlertStore{}
	uc := steadyFixture(t, alerts, nil)

	if err := uc.GenerateAlerts(context.Background(), testCompany); err != nil {
		t.Fatal(err)
	}
	if len(alerts.created) != 1 {
		t.Fatalf("expected 1 alert, got %d: %+v", len(alerts.created), alerts.created)
	}

	a := alerts.created[0]
	if a.Type != "paper_caution" {
		t.Fatalf("type = %s, want paper_caution", a.Type)
	}
	if a.Severity != model.AlertSeverityWarning {
		t.Fatalf("severity = %s, want warning", a.Severity)
	}
	if a.CompanyID != testCompany || a.ResourceID != "p1" || a.ResourceType != "paper" {
		t.Fatalf("unexpected alert identity: %+v", a)
	}
	if a.DaysRemaining != 9 {
		t.Fatalf("days remaining = %d, want 9", a.DaysRemaining)
	}
	if a.ID == "" {
		t.Fatal("alert must get an id")
	}
}

func TestGenerateAlertsDedup(t *testing.T) {
	alerts := &fakeAlertStore{
		unread: []model.Alert{{
			ID:            "existing",
			CompanyID:     testCompany,
			Type:          "paper_caution",
			ResourceID:    "p1",
			ResourceType:  "paper",
			DaysRemaining: 10, // one day off the fresh projection
		}},
	}
	uc := steadyFixture(t, alerts, nil)

	if err := uc.GenerateAlerts(context.Background(), testCompany); err != nil {
		t.Fatal(err)
	}
	if len(alerts.created) != 0 || len(alerts.read) != 0 {
		t.Fatalf("small drift must not touch the store: created=%+v read=%+v", alerts.created, alerts.read)
	}
}

func TestGenerateAlertsRefresh(t *testing.T) {
	alerts := &fakeAlertStore{
		unread: []model.Alert{{
			ID:            "stale",
			CompanyID:     testCompany,
			Type:          "paper_caution",
			ResourceID:    "p1",
			ResourceType:  "paper",
			DaysRemaining: 12, // moved by 3, beyond the refresh threshold
		}},
	}
	uc := steadyFixture(t, alerts, nil)

	if err := uc.GenerateAlerts(context.Background(), testCompany); err != nil {
		t.Fatal(err)
	}
	if len(alerts.read) != 1 || alerts.read[0] != "stale" {
		t.Fatalf("stale alert must be superseded, read=%+v", alerts.read)
	}
	if len(alerts.created) != 1 || alerts.created[0].DaysRemaining != 9 {
		t.Fatalf("expected fresh replacement at 9 days, got %+v", alerts.created)
	}
}

func TestGenerateAlertsIdempotent(t *testing.T) {
	alerts := &fakeAlertStore{}
	uc := steadyFixture(t, alerts, nil)

	if err := uc.GenerateAlerts(context.Background(), testCompany); err != nil {
		t.Fatal(err)
	}
	// second pass sees the first pass's alert as unread
	alerts.unread = alerts.created
	if err := uc.GenerateAlerts(context.Background(), testCompany); err != nil {
		t.Fatal(err)
	}
	if len(alerts.created) != 1 {
		t.Fatalf("repeat pass over unchanged data must not duplicate, got %d", len(alerts.created))
	}
}

func TestGenerateAlertsLockDenied(t *testing.T) {
	cch := newFakeCache()
	cch.denyLock = true
	alerts := &fakeAlertStore{}
	uc := steadyFixture(t, alerts, cch)

	if err := uc.GenerateAlerts(context.Background(), testCompany); err != nil {
		t.Fatal(err)
	}
	if cch.lockCalls != 1 {
		t.Fatalf("expected one lock attempt, got %d", cch.lockCalls)
	}
	if len(alerts.created) != 0 {
		t.Fatalf("a held lock must skip the pass, got %+v", alerts.created)
	}
}

func TestGenerateAlertsReleasesLock(t *testing.T) {
	cch := newFakeCache()
	alerts := &fakeAlertStore{}
	uc := steadyFixture(t, alerts, cch)

	if err := uc.GenerateAlerts(context.Background(), testCompany); err != nil {
		t.Fatal(err)
	}
	if cch.unlockHits != 1 {
		t.Fatalf("lock must be released after the pass, unlocks=%d", cch.unlockHits)
	}
	if len(cch.lockHeld) != 0 {
		t.Fatalf("lock still held: %+v", cch.lockHeld)
	}
}

func TestGenerateAlertsAllContinuesOnFailure(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	paperID := "p1"
	var jobs []model.PrintJob
	for d := 1; d <= 7; d++ {
		jobs = append(jobs, model.PrintJob{
			CompanyID: "good", PaperTypeID: &paperID, ColorMode: model.ColorModeBW,
			PageCount: 10, PrintedAt: now.AddDate(0, 0, -d),
		})
	}

	alerts := &fakeAlertStore{}
	uc := NewSupplyUseCase(
		&fakeJobs{jobs: map[string][]model.PrintJob{"good": jobs}, failOn: "broken"},
		&fakeStock{papers: []model.PaperType{{BaseModel: model.BaseModel{ID: paperID}, CompanyID: "good", Name: "A4", Stock: 20}}},
		alerts,
		&fakeCompanies{companies: []model.Company{
			{BaseModel: model.BaseModel{ID: "broken"}, IsActive: true},
			{BaseModel: model.BaseModel{ID: "good"}, IsActive: true},
		}},
		nil,
		logger.NewNop(),
		Options{},
	)
	uc.(*supplyUseCase).now = func() time.Time { return now }

	if err := uc.GenerateAlertsAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	// broken company is logged and skipped; good company still alerted
	// (20 sheets at 11/day -> 1 day, critical)
	if len(alerts.created) != 1 || alerts.created[0].Type != "paper_critical" {
		t.Fatalf("expected critical alert for the healthy company, got %+v", alerts.created)
	}
}
