package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// CampaignRepository persists campaigns.
type CampaignRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{
		db: db,
		fields: page.NewFields("campaign_id",
			page.Field{Name: "campaign_id", Column: "campaign_id"},
			page.Field{Name: "name", Column: "name"},
			page.Field{Name: "start_date", Column: "start_date"},
			page.Field{Name: "end_date", Column: "end_date"},
		),
	}
}

const campaignColumns = `campaign_id, name, start_date, end_date, target_products, store_list`

func scanCampaign(rows *sql.Rows) (model.Campaign, error) {
	var c model.Campaign
	err := rows.Scan(&c.CampaignID, &c.Name, &c.StartDate, &c.EndDate, &c.TargetProducts, &c.StoreList)
	return c, err
}

// Create inserts a campaign and fills in its generated id.
func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	const q = `INSERT INTO campaigns (name, start_date, end_date, target_products, store_list)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.StartDate, c.EndDate, c.TargetProducts, c.StoreList)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	c.CampaignID = int(id)
	return nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int) (*model.Campaign, error) {
	q := `SELECT ` + campaignColumns + ` FROM campaigns WHERE campaign_id = ?`
	var c model.Campaign
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.CampaignID, &c.Name, &c.StartDate, &c.EndDate, &c.TargetProducts, &c.StoreList)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	return &c, nil
}

// List returns one page of campaigns.
func (r *CampaignRepository) List(ctx context.Context, req page.Request) (page.Result[model.Campaign], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+campaignColumns+` FROM campaigns`,
		`SELECT COUNT(*) FROM campaigns`,
		nil, scanCampaign)
}

// Update rewrites every mutable column of a campaign.
func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	const q = `UPDATE campaigns SET name = ?, start_date = ?, end_date = ?,
		target_products = ?, store_list = ? WHERE campaign_id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.StartDate, c.EndDate,
		c.TargetProducts, c.StoreList, c.CampaignID)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	return requireRow(res, "campaign")
}

// Delete removes a campaign.
func (r *CampaignRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE campaign_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return requireRow(res, "campaign")
}

// Exists reports whether a campaign id is present.
func (r *CampaignRepository) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM campaigns WHERE campaign_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check campaign: %w", err)
	}
	return true, nil
}

// ExistsByNameAndDates reports whether another campaign already carries the
// same name and date range.
func (r *CampaignRepository) ExistsByNameAndDates(ctx context.Context, name string, start, end time.Time, excludeID int) (bool, error) {
	const q = `SELECT 1 FROM campaigns
		WHERE name = ? AND start_date = ? AND end_date = ? AND campaign_id <> ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, name, start, end, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check duplicate campaign: %w", err)
	}
	return true, nil
}

// ListOverlapping returns campaigns whose date range intersects [start, end],
// excluding the given id. Store and product list intersection is checked by
// the caller; the lists live as comma-separated text.
func (r *CampaignRepository) ListOverlapping(ctx context.Context, start, end time.Time, excludeID int) ([]model.Campaign, error) {
	q := `SELECT ` + campaignColumns + ` FROM campaigns
		WHERE start_date <= ? AND end_date >= ? AND campaign_id <> ?`
	rows, err := r.db.QueryContext(ctx, q, end, start, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list overlapping campaigns: %w", err)
	}
	defer rows.Close()

	var out []model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// requireRow converts a zero-row write into ErrNotFound.
func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
