package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/service"
)

// AuditHandler exposes the audit trail, read-only.
type AuditHandler struct {
	audit *service.AuditLogger
}

func NewAuditHandler(audit *service.AuditLogger) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) GetAll(c echo.Context) error {
	logs, err := h.audit.All(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *AuditHandler) ByEntity(c echo.Context) error {
	name := c.Param("entityName")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entityName is required"})
	}
	logs, err := h.audit.ByEntity(c.Request().Context(), name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *AuditHandler) ByUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId is required"})
	}
	logs, err := h.audit.ByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
