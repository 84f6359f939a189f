package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// CustomerRepository persists customers.
type CustomerRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{
		db: db,
		fields: page.NewFields("customer_id",
			page.Field{Name: "customer_id", Column: "customer_id"},
			page.Field{Name: "name", Column: "name"},
			page.Field{Name: "email", Column: "email"},
		),
	}
}

const customerColumns = `customer_id, name, email`

func scanCustomer(rows *sql.Rows) (model.Customer, error) {
	var c model.Customer
	err := rows.Scan(&c.CustomerID, &c.Name, &c.Email)
	return c, err
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (name, email) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Email)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	c.CustomerID = int(id)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int) (*model.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = ?`
	var c model.Customer
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.CustomerID, &c.Name, &c.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, req page.Request) (page.Result[model.Customer], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+customerColumns+` FROM customers`,
		`SELECT COUNT(*) FROM customers`,
		nil, scanCustomer)
}

func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	const q = `UPDATE customers SET name = ?, email = ? WHERE customer_id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Email, c.CustomerID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return requireRow(res, "customer")
}

func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE customer_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return requireRow(res, "customer")
}

// Exists reports whether a customer id is present.
func (r *CustomerRepository) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE customer_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return true, nil
}
