package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/service"
)

// ReportHandler exposes report generation and the analytics projections.
type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate builds a report from the current figures of the campaign named in
// the path.
func (h *ReportHandler) Generate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	report, err := h.reports.Generate(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) ViewAll(c echo.Context) error {
	res, err := h.reports.List(c.Request().Context(), pageRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) ViewByID(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	r, err := h.reports.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// CompareByRegion rolls report figures up per region.
func (h *ReportHandler) CompareByRegion(c echo.Context) error {
	rows, err := h.reports.CompareByRegion(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// RoiSummary lists each campaign's reported ROI.
func (h *ReportHandler) RoiSummary(c echo.Context) error {
	out, err := h.reports.RoiSummary(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
