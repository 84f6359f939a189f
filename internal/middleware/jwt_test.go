package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/service"
	"github.com/promopilot/promopilot-api/internal/utils"
)

const testSecret = "middleware-test-secret"

func signedToken(t *testing.T, role string) string {
	t.Helper()
	u := &model.User{ID: "user-1", Email: "x@y.z", Role: role}
	token, _, err := utils.NewAccessToken(testSecret, "promopilot", "promopilot-clients", u, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func protectedApp(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":  c.Get(ContextUserID),
			"ctx_user": service.UserIDFromContext(c.Request().Context()),
		})
	}, mw...)
	return e
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	e := protectedApp(JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, model.RoleMarketing))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"user_id":"user-1"`) || !strings.Contains(body, `"ctx_user":"user-1"`) {
		t.Fatalf("identity not propagated: %s", body)
	}
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	e := protectedApp(JWTAuth(testSecret))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := protectedApp(JWTAuth(testSecret), RequireRole(model.RoleFinance))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, model.RoleMarketing))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong role: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, model.RoleFinance))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("allowed role: status = %d, want 200", rec.Code)
	}
}
