package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// ProductRepository persists products.
type ProductRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{
		db: db,
		fields: page.NewFields("product_id",
			page.Field{Name: "product_id", Column: "product_id"},
			page.Field{Name: "name", Column: "name"},
			page.Field{Name: "category", Column: "category"},
			page.Field{Name: "price", Column: "price"},
		),
	}
}

const productColumns = `product_id, name, category, price`

func scanProduct(rows *sql.Rows) (model.Product, error) {
	var p model.Product
	err := rows.Scan(&p.ProductID, &p.Name, &p.Category, &p.Price)
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	const q = `INSERT INTO products (name, category, price) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Category, p.Price)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ProductID = int(id)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE product_id = ?`
	var p model.Product
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ProductID, &p.Name, &p.Category, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, req page.Request) (page.Result[model.Product], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+productColumns+` FROM products`,
		`SELECT COUNT(*) FROM products`,
		nil, scanProduct)
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	const q = `UPDATE products SET name = ?, category = ?, price = ? WHERE product_id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Category, p.Price, p.ProductID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res, "product")
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireRow(res, "product")
}
