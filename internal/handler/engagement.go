package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/service"
)

// EngagementHandler exposes engagement tracking.
type EngagementHandler struct {
	engagements *service.EngagementService
}

func NewEngagementHandler(engagements *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagements: engagements}
}

func (h *EngagementHandler) Track(c echo.Context) error {
	var body model.Engagement
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	created, err := h.engagements.Track(c.Request().Context(), &body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *EngagementHandler) ViewAll(c echo.Context) error {
	res, err := h.engagements.List(c.Request().Context(), pageRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EngagementHandler) ViewByID(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	e, err := h.engagements.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EngagementHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body model.Engagement
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.EngagementID = id
	updated, err := h.engagements.Update(c.Request().Context(), &body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *EngagementHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.engagements.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
