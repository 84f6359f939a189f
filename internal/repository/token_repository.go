package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
)

// TokenRepository persists refresh tokens. Only token digests are stored;
// the raw value never touches the database.
type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a new refresh token.
func (r *TokenRepository) Create(ctx context.Context, t *model.RefreshToken) error {
	const q = `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.Revoked, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// GetByHash looks a token up by its digest.
func (r *TokenRepository) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	const q = `SELECT id, user_id, token_hash, expires_at, revoked, created_at
		FROM refresh_tokens WHERE token_hash = ?`
	var t model.RefreshToken
	err := r.db.QueryRowContext(ctx, q, hash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.Revoked, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan refresh token: %w", err)
	}
	return &t, nil
}

// Revoke marks an active, unexpired token revoked. It reports whether this
// call was the one that flipped the flag, so two concurrent rotations of the
// same token resolve to a single winner.
func (r *TokenRepository) Revoke(ctx context.Context, hash string, now time.Time) (bool, error) {
	const q = `UPDATE refresh_tokens SET revoked = TRUE
		WHERE token_hash = ? AND revoked = FALSE AND expires_at > ?`
	res, err := r.db.ExecContext(ctx, q, hash, now)
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	return n == 1, nil
}

// RevokeAllForUser revokes every active token of one user.
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	const q = `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = ? AND revoked = FALSE`
	if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}
