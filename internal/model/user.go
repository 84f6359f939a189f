package model

import "time"

// Role names carried in the JWT "role" claim. The set is fixed; there is no
// role administration surface.
const (
	RoleMarketing    = "Marketing"
	RoleFinance      = "Finance"
	RoleStoreManager = "StoreManager"
)

// PublicRoles lists the roles a caller may self-register with.
var PublicRoles = []string{RoleMarketing, RoleFinance, RoleStoreManager}

// IsPublicRole reports whether role is one of the registrable roles.
func IsPublicRole(role string) bool {
	for _, r := range PublicRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User mirrors the `users` table. The password is stored as a derived key
// plus the per-user random salt it was derived with; the plain password never
// touches the database. FailedLoginAttempts and LockoutEnd carry the login
// lockout state and are only mutated on login attempts.
type User struct {
	ID                  string     // users.id (UUID)
	Username            string     // users.username
	Email               string     // users.email (unique, stored lowercase)
	PasswordHash        []byte     // users.password_hash
	PasswordSalt        []byte     // users.password_salt
	Role                string     // users.role
	FailedLoginAttempts int        // users.failed_login_attempts
	LockoutEnd          *time.Time // users.lockout_end (nullable)
	CreatedAt           time.Time  // users.created_at
}

// RefreshToken mirrors the `refresh_tokens` table. Only the SHA-256 digest of
// the opaque token is stored; the raw value goes back to the client once and
// is never persisted. A token is single-use: refreshing with it revokes it
// and issues a replacement.
type RefreshToken struct {
	ID        string    // refresh_tokens.id (UUID)
	UserID    string    // refresh_tokens.user_id
	TokenHash string    // refresh_tokens.token_hash (unique)
	ExpiresAt time.Time // refresh_tokens.expires_at
	Revoked   bool      // refresh_tokens.revoked
	CreatedAt time.Time // refresh_tokens.created_at
}
