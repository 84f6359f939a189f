package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/repository"
	"github.com/promopilot/promopilot-api/internal/service"
)

// In-memory stores backing the auth flow end to end over HTTP.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*model.User{}}
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrEmailExists
	}
	s.users[u.Email] = u
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) UpdateLockout(context.Context, *model.User) error { return nil }

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[string]*model.RefreshToken{}}
}

func (s *memTokenStore) Create(_ context.Context, t *model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.TokenHash] = t
	return nil
}

func (s *memTokenStore) GetByHash(_ context.Context, hash string) (*model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (s *memTokenStore) Revoke(_ context.Context, hash string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[hash]
	if !ok || t.Revoked || now.After(t.ExpiresAt) {
		return false, nil
	}
	t.Revoked = true
	return true, nil
}

func (s *memTokenStore) RevokeAllForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

type noopMailer struct{}

func (noopMailer) SendWelcome(string, string) error { return nil }

func authApp() *echo.Echo {
	svc := service.NewAuthService(newMemUserStore(), newMemTokenStore(), noopMailer{}, service.AuthConfig{
		JWTSecret:     "handler-test-secret",
		Issuer:        "promopilot",
		Audience:      "promopilot-clients",
		AccessTTLMin:  15,
		RefreshTTLDay: 7,
	})
	h := NewAuthHandler(svc)

	e := echo.New()
	e.POST("/api/Auth/Register", h.Register)
	e.POST("/api/Auth/Login", h.Login)
	e.POST("/api/Auth/Refresh", h.Refresh)
	e.POST("/api/Auth/Logout", h.Logout)
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	e := authApp()

	rec := post(e, "/api/Auth/Register",
		`{"username":"lena","email":"lena@promopilot.io","password":"s3cret-pass","role":"Marketing"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}

	rec = post(e, "/api/Auth/Login",
		`{"email":"lena@promopilot.io","password":"s3cret-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "access_token") {
		t.Fatalf("no access token in %s", rec.Body.String())
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	e := authApp()
	body := `{"username":"lena","email":"dup@promopilot.io","password":"s3cret-pass","role":"Finance"}`

	if rec := post(e, "/api/Auth/Register", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}
	if rec := post(e, "/api/Auth/Register", body); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: %d, want 409", rec.Code)
	}
}

func TestRegisterUnknownRoleIsBadRequest(t *testing.T) {
	e := authApp()
	rec := post(e, "/api/Auth/Register",
		`{"username":"x","email":"x@y.z","password":"longenough","role":"Admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoginBadPasswordIsUnauthorized(t *testing.T) {
	e := authApp()
	post(e, "/api/Auth/Register",
		`{"username":"lena","email":"lena@promopilot.io","password":"s3cret-pass","role":"Marketing"}`)

	rec := post(e, "/api/Auth/Login", `{"email":"lena@promopilot.io","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
