package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// SaleRepository persists sales and their payment details.
type SaleRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{
		db: db,
		fields: page.NewFields("sale_id",
			page.Field{Name: "sale_id", Column: "sale_id"},
			page.Field{Name: "campaign_id", Column: "campaign_id"},
			page.Field{Name: "customer_id", Column: "customer_id"},
			page.Field{Name: "product_id", Column: "product_id"},
			page.Field{Name: "store_id", Column: "store_id"},
			page.Field{Name: "total_amount", Column: "total_amount"},
			page.Field{Name: "sale_date", Column: "sale_date"},
		),
	}
}

const saleColumns = `sale_id, customer_id, product_id, campaign_id, store_id, quantity,
	total_amount, sale_date, transaction_id, payment_method, payment_status, payment_date`

func scanSale(rows *sql.Rows) (model.Sale, error) {
	var s model.Sale
	err := rows.Scan(&s.SaleID, &s.CustomerID, &s.ProductID, &s.CampaignID, &s.StoreID,
		&s.Quantity, &s.TotalAmount, &s.SaleDate, &s.TransactionID,
		&s.PaymentMethod, &s.PaymentStatus, &s.PaymentDate)
	return s, err
}

func (r *SaleRepository) Create(ctx context.Context, s *model.Sale) error {
	const q = `INSERT INTO sales (customer_id, product_id, campaign_id, store_id, quantity,
		total_amount, sale_date, transaction_id, payment_method, payment_status, payment_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.CustomerID, s.ProductID, s.CampaignID, s.StoreID,
		s.Quantity, s.TotalAmount, s.SaleDate, s.TransactionID,
		s.PaymentMethod, s.PaymentStatus, s.PaymentDate)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	s.SaleID = int(id)
	return nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id int) (*model.Sale, error) {
	q := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = ?`
	var s model.Sale
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.SaleID, &s.CustomerID, &s.ProductID, &s.CampaignID, &s.StoreID,
			&s.Quantity, &s.TotalAmount, &s.SaleDate, &s.TransactionID,
			&s.PaymentMethod, &s.PaymentStatus, &s.PaymentDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return &s, nil
}

func (r *SaleRepository) List(ctx context.Context, req page.Request) (page.Result[model.Sale], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+saleColumns+` FROM sales`,
		`SELECT COUNT(*) FROM sales`,
		nil, scanSale)
}

func (r *SaleRepository) Update(ctx context.Context, s *model.Sale) error {
	const q = `UPDATE sales SET customer_id = ?, product_id = ?, campaign_id = ?, store_id = ?,
		quantity = ?, total_amount = ?, sale_date = ?, transaction_id = ?,
		payment_method = ?, payment_status = ?, payment_date = ? WHERE sale_id = ?`
	res, err := r.db.ExecContext(ctx, q, s.CustomerID, s.ProductID, s.CampaignID, s.StoreID,
		s.Quantity, s.TotalAmount, s.SaleDate, s.TransactionID,
		s.PaymentMethod, s.PaymentStatus, s.PaymentDate, s.SaleID)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return requireRow(res, "sale")
}

func (r *SaleRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE sale_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return requireRow(res, "sale")
}

// StatsForCampaign returns a campaign's summed sale revenue and sale count.
func (r *SaleRepository) StatsForCampaign(ctx context.Context, campaignID int) (revenue float64, conversions int, err error) {
	const q = `SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM sales WHERE campaign_id = ?`
	if err := r.db.QueryRowContext(ctx, q, campaignID).Scan(&revenue, &conversions); err != nil {
		return 0, 0, fmt.Errorf("aggregate sales: %w", err)
	}
	return revenue, conversions, nil
}
