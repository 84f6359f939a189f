package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/repository"
	"github.com/promopilot/promopilot-api/internal/utils"
)

// UserStore is the account storage the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateLockout(ctx context.Context, u *model.User) error
}

// TokenStore is the refresh-token storage the auth service needs.
type TokenStore interface {
	Create(ctx context.Context, t *model.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, hash string, now time.Time) (bool, error)
	RevokeAllForUser(ctx context.Context, userID string) error
}

// Mailer delivers outbound mail requests. Delivery is best-effort; auth
// flows never fail on a mailer error.
type Mailer interface {
	SendWelcome(email, username string) error
}

// AuthConfig carries the token parameters.
type AuthConfig struct {
	JWTSecret     string
	Issuer        string
	Audience      string
	AccessTTLMin  int
	RefreshTTLDay int
}

// AuthService implements registration, login, token rotation and logout.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	mailer Mailer
	cfg    AuthConfig
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens TokenStore, mailer Mailer, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer, cfg: cfg, now: time.Now}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
}

// Register creates an account. Emails are stored lowercased; the role must
// be one of the public roles.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", ErrInvalidArgument)
	}
	if len(req.Password) < utils.MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidArgument, utils.MinPasswordLen)
	}
	if !model.IsPublicRole(req.Role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}

	hash, salt, err := utils.CreatePasswordHash(req.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         req.Role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
		return nil, err
	}

	if err := s.mailer.SendWelcome(u.Email, u.Username); err != nil {
		log.Printf("auth: welcome mail for %s not queued: %v", u.Email, err)
	}
	return u, nil
}

// Login verifies credentials under the lockout machine and issues a token
// pair. Wrong passwords and unknown emails are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	state := lockoutOf(u)
	if state.Locked(now) {
		return nil, fmt.Errorf("%w until %s", ErrAccountLocked, u.LockoutEnd.UTC().Format(time.RFC3339))
	}

	if !utils.VerifyPassword(password, u.PasswordHash, u.PasswordSalt) {
		state = state.Failure(now)
		state.applyTo(u)
		if err := s.users.UpdateLockout(ctx, u); err != nil {
			return nil, err
		}
		if state.Locked(now) {
			// A locked account loses its live sessions too.
			if err := s.tokens.RevokeAllForUser(ctx, u.ID); err != nil {
				log.Printf("auth: revoking tokens for locked user %s: %v", u.ID, err)
			}
			return nil, fmt.Errorf("%w until %s", ErrAccountLocked, u.LockoutEnd.UTC().Format(time.RFC3339))
		}
		return nil, ErrInvalidCredentials
	}

	if u.FailedLoginAttempts != 0 || u.LockoutEnd != nil {
		state = state.Success()
		state.applyTo(u)
		if err := s.users.UpdateLockout(ctx, u); err != nil {
			return nil, err
		}
	}
	return s.issuePair(ctx, u)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Of two concurrent calls with the same token, exactly one
// wins; the other gets ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*AuthResponse, error) {
	hash := utils.HashRefreshToken(rawToken)
	stored, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	now := s.now()
	if stored.Revoked || now.After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	won, err := s.tokens.Revoke(ctx, hash, now)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.issuePair(ctx, u)
}

// Logout revokes the presented refresh token. It reports whether a live
// token was actually revoked.
func (s *AuthService) Logout(ctx context.Context, rawToken string) (bool, error) {
	return s.tokens.Revoke(ctx, utils.HashRefreshToken(rawToken), s.now())
}

func (s *AuthService) issuePair(ctx context.Context, u *model.User) (*AuthResponse, error) {
	access, accessExp, err := utils.NewAccessToken(s.cfg.JWTSecret, s.cfg.Issuer, s.cfg.Audience,
		u, time.Duration(s.cfg.AccessTTLMin)*time.Minute)
	if err != nil {
		return nil, err
	}
	raw, refreshExp, err := utils.NewRefreshToken(time.Duration(s.cfg.RefreshTTLDay) * 24 * time.Hour)
	if err != nil {
		return nil, err
	}
	t := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		TokenHash: utils.HashRefreshToken(raw),
		ExpiresAt: refreshExp,
		CreatedAt: s.now().UTC(),
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     raw,
		RefreshExpiresAt: refreshExp,
		Username:         u.Username,
		Email:            u.Email,
		Role:             u.Role,
	}, nil
}
