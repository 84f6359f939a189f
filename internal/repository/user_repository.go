package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/promopilot/promopilot-api/internal/model"
)

// UserRepository persists accounts and their lockout counters.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account. Emails are unique; a duplicate maps to
// ErrEmailExists.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users
		(id, username, email, password_hash, password_salt, role, failed_login_attempts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.Username, u.Email, u.PasswordHash, u.PasswordSalt,
		u.Role, u.FailedLoginAttempts, u.CreatedAt)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail looks an account up by its lowercased email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, username, email, password_hash, password_salt, role,
		failed_login_attempts, lockout_end, created_at
		FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, strings.ToLower(email)))
}

// GetByID looks an account up by its id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, username, email, password_hash, password_salt, role,
		failed_login_attempts, lockout_end, created_at
		FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// UpdateLockout stores the lockout counters after a login attempt.
func (r *UserRepository) UpdateLockout(ctx context.Context, u *model.User) error {
	const q = `UPDATE users SET failed_login_attempts = ?, lockout_end = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, u.FailedLoginAttempts, u.LockoutEnd, u.ID)
	if err != nil {
		return fmt.Errorf("update lockout state: %w", err)
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PasswordSalt,
		&u.Role, &u.FailedLoginAttempts, &u.LockoutEnd, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
