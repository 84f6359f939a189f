package service

import "context"

type contextKey string

const userIDKey contextKey = "user_id"

// WithUserID stamps the authenticated actor's id onto the context. The audit
// trail reads it back when recording writes.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the actor id, or "" when the request carried no
// authenticated user.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
