package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

// ExecutionStatusRepository persists per-store campaign execution updates.
type ExecutionStatusRepository struct {
	db     *sql.DB
	fields page.Fields
}

func NewExecutionStatusRepository(db *sql.DB) *ExecutionStatusRepository {
	return &ExecutionStatusRepository{
		db: db,
		fields: page.NewFields("status_id",
			page.Field{Name: "status_id", Column: "status_id"},
			page.Field{Name: "campaign_id", Column: "campaign_id"},
			page.Field{Name: "store_id", Column: "store_id"},
			page.Field{Name: "status", Column: "status"},
		),
	}
}

const executionStatusColumns = `status_id, campaign_id, store_id, status, feedback`

func scanExecutionStatus(rows *sql.Rows) (model.ExecutionStatus, error) {
	var s model.ExecutionStatus
	err := rows.Scan(&s.StatusID, &s.CampaignID, &s.StoreID, &s.Status, &s.Feedback)
	return s, err
}

func (r *ExecutionStatusRepository) Create(ctx context.Context, s *model.ExecutionStatus) error {
	const q = `INSERT INTO execution_statuses (campaign_id, store_id, status, feedback)
		VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.CampaignID, s.StoreID, s.Status, s.Feedback)
	if err != nil {
		return fmt.Errorf("insert execution status: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert execution status: %w", err)
	}
	s.StatusID = int(id)
	return nil
}

func (r *ExecutionStatusRepository) GetByID(ctx context.Context, id int) (*model.ExecutionStatus, error) {
	q := `SELECT ` + executionStatusColumns + ` FROM execution_statuses WHERE status_id = ?`
	var s model.ExecutionStatus
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.StatusID, &s.CampaignID, &s.StoreID, &s.Status, &s.Feedback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan execution status: %w", err)
	}
	return &s, nil
}

func (r *ExecutionStatusRepository) List(ctx context.Context, req page.Request) (page.Result[model.ExecutionStatus], error) {
	return page.Query(ctx, r.db, req, r.fields,
		`SELECT `+executionStatusColumns+` FROM execution_statuses`,
		`SELECT COUNT(*) FROM execution_statuses`,
		nil, scanExecutionStatus)
}

func (r *ExecutionStatusRepository) Update(ctx context.Context, s *model.ExecutionStatus) error {
	const q = `UPDATE execution_statuses SET campaign_id = ?, store_id = ?, status = ?, feedback = ?
		WHERE status_id = ?`
	res, err := r.db.ExecContext(ctx, q, s.CampaignID, s.StoreID, s.Status, s.Feedback, s.StatusID)
	if err != nil {
		return fmt.Errorf("update execution status: %w", err)
	}
	return requireRow(res, "execution status")
}

func (r *ExecutionStatusRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM execution_statuses WHERE status_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete execution status: %w", err)
	}
	return requireRow(res, "execution status")
}
