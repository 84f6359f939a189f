package model

import "time"

// AuditLog records one create/update/delete performed through the API.
// Changes holds the mutated payload serialized as JSON. Writes are
// best-effort; a failed audit insert never fails the operation it describes.
type AuditLog struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	EntityName string    `json:"entity_name"`
	EntityID   string    `json:"entity_id"`
	Changes    string    `json:"changes"`
	Timestamp  time.Time `json:"timestamp"`
}
