package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
)

// AuditStore is the storage behind the audit trail.
type AuditStore interface {
	Create(ctx context.Context, l *model.AuditLog) error
	All(ctx context.Context) ([]model.AuditLog, error)
	ByEntity(ctx context.Context, entityName string) ([]model.AuditLog, error)
	ByUser(ctx context.Context, userID string) ([]model.AuditLog, error)
}

// AuditLogger records every write that goes through the entity services.
// Recording is best-effort: a failed insert is logged and swallowed, the
// write it describes has already succeeded.
type AuditLogger struct {
	store AuditStore
	now   func() time.Time
}

func NewAuditLogger(store AuditStore) *AuditLogger {
	return &AuditLogger{store: store, now: time.Now}
}

// Record writes one audit entry. The actor id comes from the request
// context; changes is serialized to JSON.
func (a *AuditLogger) Record(ctx context.Context, action, entityName, entityID string, changes any) {
	payload, err := json.Marshal(changes)
	if err != nil {
		log.Printf("audit: marshal %s %s/%s: %v", action, entityName, entityID, err)
		return
	}
	entry := &model.AuditLog{
		UserID:     UserIDFromContext(ctx),
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Changes:    string(payload),
		Timestamp:  a.now().UTC(),
	}
	if err := a.store.Create(ctx, entry); err != nil {
		log.Printf("audit: record %s %s/%s: %v", action, entityName, entityID, err)
	}
}

// All returns the full trail.
func (a *AuditLogger) All(ctx context.Context) ([]model.AuditLog, error) {
	return a.store.All(ctx)
}

// ByEntity returns the trail of one entity type.
func (a *AuditLogger) ByEntity(ctx context.Context, entityName string) ([]model.AuditLog, error) {
	return a.store.ByEntity(ctx, entityName)
}

// ByUser returns the trail of one actor.
func (a *AuditLogger) ByUser(ctx context.Context, userID string) ([]model.AuditLog, error) {
	return a.store.ByUser(ctx, userID)
}
