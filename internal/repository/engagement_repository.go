package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// EngagementRepository persists customer engagements with campaigns.
type EngagementRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewEngagementRepository(db *sql.DB) *EngagementRepository {
	return &EngagementRepository{
		db: db,
		fields: page.NewFields("engagement_id",
			page.Field{Name: "engagement_id", Column: "engagement_id"},
			page.Field{Name: "campaign_id", Column: "campaign_id"},
			page.Field{Name: "customer_id", Column: "customer_id"},
			page.Field{Name: "redemption_count", Column: "redemption_count"},
			page.Field{Name: "purchase_value", Column: "purchase_value"},
		),
	}
}

const engagementColumns = `engagement_id, campaign_id, customer_id, redemption_count, purchase_value`

func scanEngagement(rows *sql.Rows) (model.Engagement, error) {
	var e model.Engagement
	err := rows.Scan(&e.EngagementID, &e.CampaignID, &e.CustomerID, &e.RedemptionCount, &e.PurchaseValue)
	return e, err
}

func (r *EngagementRepository) Create(ctx context.Context, e *model.Engagement) error {
	const q = `INSERT INTO engagements (campaign_id, customer_id, redemption_count, purchase_value)
		VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.CampaignID, e.CustomerID, e.RedemptionCount, e.PurchaseValue)
	if err != nil {
		return fmt.Errorf("insert engagement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert engagement: %w", err)
	}
	e.EngagementID = int(id)
	return nil
}

func (r *EngagementRepository) GetByID(ctx context.Context, id int) (*model.Engagement, error) {
	q := `SELECT ` + engagementColumns + ` FROM engagements WHERE engagement_id = ?`
	var e model.Engagement
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&e.EngagementID, &e.CampaignID, &e.CustomerID, &e.RedemptionCount, &e.PurchaseValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan engagement: %w", err)
	}
	return &e, nil
}

func (r *EngagementRepository) List(ctx context.Context, req page.Request) (page.Result[model.Engagement], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+engagementColumns+` FROM engagements`,
		`SELECT COUNT(*) FROM engagements`,
		nil, scanEngagement)
}

func (r *EngagementRepository) Update(ctx context.Context, e *model.Engagement) error {
	const q = `UPDATE engagements SET campaign_id = ?, customer_id = ?, redemption_count = ?, purchase_value = ?
		WHERE engagement_id = ?`
	res, err := r.db.ExecContext(ctx, q, e.CampaignID, e.CustomerID, e.RedemptionCount, e.PurchaseValue, e.EngagementID)
	if err != nil {
		return fmt.Errorf("update engagement: %w", err)
	}
	return requireRow(res, "engagement")
}

func (r *EngagementRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM engagements WHERE engagement_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete engagement: %w", err)
	}
	return requireRow(res, "engagement")
}

// CountForCampaign counts a campaign's engagements (its reach).
func (r *EngagementRepository) CountForCampaign(ctx context.Context, campaignID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM engagements WHERE campaign_id = ?`, campaignID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count engagements: %w", err)
	}
	return n, nil
}
