package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// BudgetRepository persists per-store campaign budgets.
type BudgetRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{
		db: db,
		fields: page.NewFields("budget_id",
			page.Field{Name: "budget_id", Column: "budget_id"},
			page.Field{Name: "campaign_id", Column: "campaign_id"},
			page.Field{Name: "store_id", Column: "store_id"},
			page.Field{Name: "allocated_amount", Column: "allocated_amount"},
			page.Field{Name: "spent_amount", Column: "spent_amount"},
		),
	}
}

const budgetColumns = `budget_id, campaign_id, store_id, allocated_amount, spent_amount`

func scanBudget(rows *sql.Rows) (model.Budget, error) {
	var b model.Budget
	err := rows.Scan(&b.BudgetID, &b.CampaignID, &b.StoreID, &b.AllocatedAmount, &b.SpentAmount)
	return b, err
}

func (r *BudgetRepository) Create(ctx context.Context, b *model.Budget) error {
	const q = `INSERT INTO budgets (campaign_id, store_id, allocated_amount, spent_amount)
		VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.CampaignID, b.StoreID, b.AllocatedAmount, b.SpentAmount)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	b.BudgetID = int(id)
	return nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id int) (*model.Budget, error) {
	q := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = ?`
	var b model.Budget
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&b.BudgetID, &b.CampaignID, &b.StoreID, &b.AllocatedAmount, &b.SpentAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan budget: %w", err)
	}
	return &b, nil
}

func (r *BudgetRepository) List(ctx context.Context, req page.Request) (page.Result[model.Budget], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+budgetColumns+` FROM budgets`,
		`SELECT COUNT(*) FROM budgets`,
		nil, scanBudget)
}

func (r *BudgetRepository) Update(ctx context.Context, b *model.Budget) error {
	const q = `UPDATE budgets SET campaign_id = ?, store_id = ?, allocated_amount = ?, spent_amount = ?
		WHERE budget_id = ?`
	res, err := r.db.ExecContext(ctx, q, b.CampaignID, b.StoreID, b.AllocatedAmount, b.SpentAmount, b.BudgetID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res, "budget")
}

func (r *BudgetRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE budget_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res, "budget")
}

// TotalAllocatedForCampaign sums the allocated amounts of every budget tied
// to a campaign. Campaigns without budgets total zero.
func (r *BudgetRepository) TotalAllocatedForCampaign(ctx context.Context, campaignID int) (float64, error) {
	const q = `SELECT COALESCE(SUM(allocated_amount), 0) FROM budgets WHERE campaign_id = ?`
	var total float64
	if err := r.db.QueryRowContext(ctx, q, campaignID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum allocated budgets: %w", err)
	}
	return total, nil
}
