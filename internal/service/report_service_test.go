package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

type mockReportStore struct {
	create        func(ctx context.Context, r *model.CampaignReport) error
	getByID       func(ctx context.Context, id int) (*model.CampaignReport, error)
	list          func(ctx context.Context, req page.Request) (page.Result[model.CampaignReport], error)
	allWithRegion func(ctx context.Context) ([]model.CampaignReportWithRegion, error)
	roiSummaries  func(ctx context.Context) ([]model.RoiSummary, error)
}

func (m *mockReportStore) Create(ctx context.Context, r *model.CampaignReport) error {
	return m.create(ctx, r)
}
func (m *mockReportStore) GetByID(ctx context.Context, id int) (*model.CampaignReport, error) {
	return m.getByID(ctx, id)
}
func (m *mockReportStore) List(ctx context.Context, req page.Request) (page.Result[model.CampaignReport], error) {
	return m.list(ctx, req)
}
func (m *mockReportStore) AllWithRegion(ctx context.Context) ([]model.CampaignReportWithRegion, error) {
	return m.allWithRegion(ctx)
}
func (m *mockReportStore) RoiSummaries(ctx context.Context) ([]model.RoiSummary, error) {
	return m.roiSummaries(ctx)
}

type statsFixture struct {
	revenue     float64
	cost        float64
	reach       int
	conversions int
}

func (f statsFixture) TotalAllocatedForCampaign(context.Context, int) (float64, error) {
	return f.cost, nil
}
func (f statsFixture) CountForCampaign(context.Context, int) (int, error) { return f.reach, nil }
func (f statsFixture) StatsForCampaign(context.Context, int) (float64, int, error) {
	return f.revenue, f.conversions, nil
}

func reportServiceWith(store *mockReportStore, f statsFixture, exists existsFunc) *ReportService {
	audit, _ := testAudit()
	svc := NewReportService(store, exists, f, f, f, audit)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGenerateReport(t *testing.T) {
	var stored *model.CampaignReport
	store := &mockReportStore{
		create: func(_ context.Context, r *model.CampaignReport) error {
			r.ReportID = 1
			stored = r
			return nil
		},
	}
	f := statsFixture{revenue: 1500, cost: 1000, reach: 40, conversions: 10}
	svc := reportServiceWith(store, f, existsFunc(alwaysExists))

	r, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !almostEqual(r.ROI, 50) {
		t.Fatalf("roi = %v, want 50", r.ROI)
	}
	if !almostEqual(r.ConversionRate, 25) {
		t.Fatalf("conversion rate = %v, want 25", r.ConversionRate)
	}
	if r.Reach != 40 || stored == nil {
		t.Fatalf("report = %+v", r)
	}
}

func TestGenerateZeroDenominators(t *testing.T) {
	store := &mockReportStore{
		create: func(_ context.Context, r *model.CampaignReport) error { return nil },
	}
	f := statsFixture{revenue: 500, cost: 0, reach: 0, conversions: 0}
	svc := reportServiceWith(store, f, existsFunc(alwaysExists))

	r, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.ROI != 0 || r.ConversionRate != 0 {
		t.Fatalf("zero-cost zero-reach report = %+v", r)
	}
}

func TestGenerateRejectsMoreSalesThanEngagements(t *testing.T) {
	f := statsFixture{revenue: 100, cost: 50, reach: 2, conversions: 3}
	svc := reportServiceWith(&mockReportStore{}, f, existsFunc(alwaysExists))

	if _, err := svc.Generate(context.Background(), 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestGenerateUnknownCampaign(t *testing.T) {
	svc := reportServiceWith(&mockReportStore{}, statsFixture{}, existsFunc(neverExists))

	if _, err := svc.Generate(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCompareByRegionSplitsFigures(t *testing.T) {
	store := &mockReportStore{
		allWithRegion: func(context.Context) ([]model.CampaignReportWithRegion, error) {
			return []model.CampaignReportWithRegion{
				{CampaignID: 1, ROI: 60, Reach: 30, ConversionRate: 12, Region: "North,South"},
				{CampaignID: 2, ROI: 10, Reach: 5, ConversionRate: 4, Region: "North"},
			}, nil
		},
	}
	svc := reportServiceWith(store, statsFixture{}, existsFunc(alwaysExists))

	rows, err := svc.CompareByRegion(context.Background())
	if err != nil {
		t.Fatalf("CompareByRegion: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	// Sorted by region then campaign: North/1, North/2, South/1.
	if rows[0].Region != "North" || rows[0].CampaignID != 1 || !almostEqual(rows[0].TotalROI, 30) {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[0].TotalReach != 15 || !almostEqual(rows[0].AverageConversionRate, 6) {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Region != "North" || rows[1].CampaignID != 2 || !almostEqual(rows[1].TotalROI, 10) {
		t.Fatalf("row 1 = %+v", rows[1])
	}
	if rows[2].Region != "South" || rows[2].CampaignID != 1 {
		t.Fatalf("row 2 = %+v", rows[2])
	}
}

func TestRoiSummary(t *testing.T) {
	store := &mockReportStore{
		roiSummaries: func(context.Context) ([]model.RoiSummary, error) {
			return []model.RoiSummary{{CampaignID: 1, ROI: 42}}, nil
		},
	}
	svc := reportServiceWith(store, statsFixture{}, existsFunc(alwaysExists))

	out, err := svc.RoiSummary(context.Background())
	if err != nil || len(out) != 1 || out[0].ROI != 42 {
		t.Fatalf("out=%+v err=%v", out, err)
	}
}
