package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/service"
)

// ExecutionStatusHandler exposes per-store execution updates.
type ExecutionStatusHandler struct {
	statuses *service.ExecutionStatusService
}

func NewExecutionStatusHandler(statuses *service.ExecutionStatusService) *ExecutionStatusHandler {
	return &ExecutionStatusHandler{statuses: statuses}
}

func (h *ExecutionStatusHandler) Create(c echo.Context) error {
	var body model.ExecutionStatus
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	created, err := h.statuses.Create(c.Request().Context(), &body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ExecutionStatusHandler) ViewAll(c echo.Context) error {
	res, err := h.statuses.List(c.Request().Context(), pageRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ExecutionStatusHandler) ViewByID(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	es, err := h.statuses.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, es)
}

func (h *ExecutionStatusHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body model.ExecutionStatus
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.StatusID = id
	updated, err := h.statuses.Update(c.Request().Context(), &body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ExecutionStatusHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.statuses.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
