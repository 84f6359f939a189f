package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// ReportRepository persists generated campaign reports.
type ReportRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{
		db: db,
		fields: page.NewFields("report_id",
			page.Field{Name: "report_id", Column: "report_id"},
			page.Field{Name: "campaign_id", Column: "campaign_id"},
			page.Field{Name: "roi", Column: "roi"},
			page.Field{Name: "reach", Column: "reach"},
			page.Field{Name: "conversion_rate", Column: "conversion_rate"},
			page.Field{Name: "generated_date", Column: "generated_date"},
		),
	}
}

const reportColumns = `report_id, campaign_id, roi, reach, conversion_rate, generated_date`

func scanReport(rows *sql.Rows) (model.CampaignReport, error) {
	var rep model.CampaignReport
	err := rows.Scan(&rep.ReportID, &rep.CampaignID, &rep.ROI, &rep.Reach,
		&rep.ConversionRate, &rep.GeneratedDate)
	return rep, err
}

func (r *ReportRepository) Create(ctx context.Context, rep *model.CampaignReport) error {
	const q = `INSERT INTO campaign_reports (campaign_id, roi, reach, conversion_rate, generated_date)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rep.CampaignID, rep.ROI, rep.Reach,
		rep.ConversionRate, rep.GeneratedDate)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	rep.ReportID = int(id)
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id int) (*model.CampaignReport, error) {
	q := `SELECT ` + reportColumns + ` FROM campaign_reports WHERE report_id = ?`
	var rep model.CampaignReport
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&rep.ReportID, &rep.CampaignID, &rep.ROI, &rep.Reach,
			&rep.ConversionRate, &rep.GeneratedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}
	return &rep, nil
}

func (r *ReportRepository) List(ctx context.Context, req page.Request) (page.Result[model.CampaignReport], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+reportColumns+` FROM campaign_reports`,
		`SELECT COUNT(*) FROM campaign_reports`,
		nil, scanReport)
}

// AllWithRegion returns every report joined with its campaign's store list,
// for the region comparison endpoints.
func (r *ReportRepository) AllWithRegion(ctx context.Context) ([]model.CampaignReportWithRegion, error) {
	const q = `SELECT r.campaign_id, r.roi, r.reach, r.conversion_rate, c.store_list
		FROM campaign_reports r
		JOIN campaigns c ON c.campaign_id = r.campaign_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list reports with regions: %w", err)
	}
	defer rows.Close()

	var out []model.CampaignReportWithRegion
	for rows.Next() {
		var rep model.CampaignReportWithRegion
		if err := rows.Scan(&rep.CampaignID, &rep.ROI, &rep.Reach, &rep.ConversionRate, &rep.Region); err != nil {
			return nil, fmt.Errorf("scan report with region: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// RoiSummaries projects every report down to (campaign, ROI).
func (r *ReportRepository) RoiSummaries(ctx context.Context) ([]model.RoiSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT campaign_id, roi FROM campaign_reports`)
	if err != nil {
		return nil, fmt.Errorf("list roi summaries: %w", err)
	}
	defer rows.Close()

	var out []model.RoiSummary
	for rows.Next() {
		var s model.RoiSummary
		if err := rows.Scan(&s.CampaignID, &s.ROI); err != nil {
			return nil, fmt.Errorf("scan roi summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
