package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/promopilot/promopilot-api/internal/model"
)

// AuditRepository persists the audit trail.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, l *model.AuditLog) error {
	const q = `INSERT INTO audit_logs (user_id, action, entity_name, entity_id, changes, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, l.UserID, l.Action, l.EntityName, l.EntityID, l.Changes, l.Timestamp)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	l.ID = id
	return nil
}

const auditColumns = `id, user_id, action, entity_name, entity_id, changes, timestamp`

func (r *AuditRepository) collect(rows *sql.Rows) ([]model.AuditLog, error) {
	defer rows.Close()
	var out []model.AuditLog
	for rows.Next() {
		var l model.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityName, &l.EntityID, &l.Changes, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// All returns the full audit trail, newest first.
func (r *AuditRepository) All(ctx context.Context) ([]model.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return r.collect(rows)
}

// ByEntity returns the audit trail of one entity type, newest first.
func (r *AuditRepository) ByEntity(ctx context.Context, entityName string) ([]model.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE entity_name = ? ORDER BY timestamp DESC, id DESC`,
		entityName)
	if err != nil {
		return nil, fmt.Errorf("list audit logs by entity: %w", err)
	}
	return r.collect(rows)
}

// ByUser returns the audit trail of one actor, newest first.
func (r *AuditRepository) ByUser(ctx context.Context, userID string) ([]model.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE user_id = ? ORDER BY timestamp DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs by user: %w", err)
	}
	return r.collect(rows)
}
