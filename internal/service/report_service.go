package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
	"github.com/promopilot/promopilot-api/internal/repository"
)

// ReportStore is the report storage the service needs.
type ReportStore interface {
	Create(ctx context.Context, r *model.CampaignReport) error
	GetByID(ctx context.Context, id int) (*model.CampaignReport, error)
	List(ctx context.Context, req page.Request) (page.Result[model.CampaignReport], error)
	AllWithRegion(ctx context.Context) ([]model.CampaignReportWithRegion, error)
	RoiSummaries(ctx context.Context) ([]model.RoiSummary, error)
}

// BudgetTotals supplies the summed allocation of one campaign.
type BudgetTotals interface {
	TotalAllocatedForCampaign(ctx context.Context, campaignID int) (float64, error)
}

// EngagementCounts supplies a campaign's engagement count.
type EngagementCounts interface {
	CountForCampaign(ctx context.Context, campaignID int) (int, error)
}

// SaleStats supplies a campaign's summed revenue and sale count.
type SaleStats interface {
	StatsForCampaign(ctx context.Context, campaignID int) (revenue float64, conversions int, err error)
}

// ReportService generates performance reports from a campaign's budgets,
// engagements and sales, and rolls them up by region.
type ReportService struct {
	store       ReportStore
	campaigns   ExistenceChecker
	budgets     BudgetTotals
	engagements EngagementCounts
	sales       SaleStats
	audit       *AuditLogger
	now         func() time.Time
}

func NewReportService(store ReportStore, campaigns ExistenceChecker, budgets BudgetTotals,
	engagements EngagementCounts, sales SaleStats, audit *AuditLogger) *ReportService {
	return &ReportService{
		store:       store,
		campaigns:   campaigns,
		budgets:     budgets,
		engagements: engagements,
		sales:       sales,
		audit:       audit,
		now:         time.Now,
	}
}

// computeFigures turns raw campaign aggregates into report figures. Both
// rates are percentages; a zero denominator yields zero, not an error.
func computeFigures(stats model.CampaignStats) (roi, conversionRate float64) {
	if stats.Cost > 0 {
		roi = ((stats.Revenue - stats.Cost) / stats.Cost) * 100
	}
	if stats.Reach > 0 {
		conversionRate = (float64(stats.Conversions) / float64(stats.Reach)) * 100
	}
	return roi, conversionRate
}

// Generate builds and stores a report for one campaign. A campaign whose
// sale count exceeds its engagement count has inconsistent data and is
// rejected.
func (s *ReportService) Generate(ctx context.Context, campaignID int) (*model.CampaignReport, error) {
	ok, err := s.campaigns.Exists(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: campaign %d", ErrNotFound, campaignID)
	}

	revenue, conversions, err := s.sales.StatsForCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	cost, err := s.budgets.TotalAllocatedForCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	reach, err := s.engagements.CountForCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if conversions > reach {
		return nil, fmt.Errorf("%w: campaign %d has %d sales but only %d engagements",
			ErrConflict, campaignID, conversions, reach)
	}

	roi, conversionRate := computeFigures(model.CampaignStats{
		Revenue: revenue, Cost: cost, Reach: reach, Conversions: conversions,
	})
	report := &model.CampaignReport{
		CampaignID:     campaignID,
		ROI:            roi,
		Reach:          reach,
		ConversionRate: conversionRate,
		GeneratedDate:  s.now().UTC(),
	}
	if err := s.store.Create(ctx, report); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "CampaignReport", strconv.Itoa(report.ReportID), report)
	return report, nil
}

func (s *ReportService) GetByID(ctx context.Context, id int) (*model.CampaignReport, error) {
	r, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: report %d", ErrNotFound, id)
	}
	return r, err
}

func (s *ReportService) List(ctx context.Context, req page.Request) (page.Result[model.CampaignReport], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

// CompareByRegion splits each report's store list into regions and spreads
// its figures evenly across them. One row comes out per campaign and
// region, ordered by region then campaign.
func (s *ReportService) CompareByRegion(ctx context.Context) ([]model.RegionPerformance, error) {
	reports, err := s.store.AllWithRegion(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.RegionPerformance
	for _, r := range reports {
		regions := SplitList(r.Region)
		if len(regions) == 0 {
			continue
		}
		n := float64(len(regions))
		for _, region := range regions {
			out = append(out, model.RegionPerformance{
				Region:                strings.TrimSpace(region),
				CampaignID:            r.CampaignID,
				TotalROI:              r.ROI / n,
				TotalReach:            r.Reach / len(regions),
				AverageConversionRate: r.ConversionRate / n,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].CampaignID < out[j].CampaignID
	})
	return out, nil
}

// RoiSummary lists every campaign's reported ROI.
func (s *ReportService) RoiSummary(ctx context.Context) ([]model.RoiSummary, error) {
	return s.store.RoiSummaries(ctx)
}
