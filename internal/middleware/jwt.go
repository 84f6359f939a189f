package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/service"
	"github.com/promopilot/promopilot-api/internal/utils"
)

// Context keys set by JWTAuth.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// JWTAuth validates the Bearer token and stamps the caller's identity onto
// the echo context. The actor id is also pushed into the request context so
// the audit trail can read it without touching echo.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "malformed authorization header"})
			}

			claims, err := utils.ParseAccessToken(secret, parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(ContextUserID, claims.Subject)
			c.Set(ContextEmail, claims.Email)
			c.Set(ContextRole, claims.Role)

			req := c.Request()
			c.SetRequest(req.WithContext(service.WithUserID(req.Context(), claims.Subject)))
			return next(c)
		}
	}
}
