package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/service"
)

// CampaignHandler exposes the campaign lifecycle.
type CampaignHandler struct {
	campaigns *service.CampaignService
}

func NewCampaignHandler(campaigns *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// Plan creates a campaign.
func (h *CampaignHandler) Plan(c echo.Context) error {
	var body model.Campaign
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	created, err := h.campaigns.Plan(c.Request().Context(), &body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetAll lists campaigns one page at a time.
func (h *CampaignHandler) GetAll(c echo.Context) error {
	res, err := h.campaigns.List(c.Request().Context(), pageRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetByID returns one campaign.
func (h *CampaignHandler) GetByID(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	campaign, err := h.campaigns.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, campaign)
}

// Update rewrites a campaign.
func (h *CampaignHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body model.Campaign
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.CampaignID = id
	updated, err := h.campaigns.Update(c.Request().Context(), &body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Cancel removes a campaign.
func (h *CampaignHandler) Cancel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.campaigns.Cancel(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Schedule extends a campaign's store list. The body is the raw
// comma-separated store list; a JSON-quoted string is tolerated.
func (h *CampaignHandler) Schedule(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	stores := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	updated, err := h.campaigns.Schedule(c.Request().Context(), id, stores)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
