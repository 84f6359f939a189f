package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/promopilot/promopilot-api/internal/page"
	"github.com/promopilot/promopilot-api/internal/service"
)

// pageRequest reads the shared paging query parameters. Absent values fall
// back to page 1 with the default size; malformed numbers surface through
// validation in the page engine.
func pageRequest(c echo.Context) page.Request {
	req := page.Request{Number: 1, Size: page.DefaultSize}
	if v := c.QueryParam("pageNumber"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Number = n
		} else {
			req.Number = 0
		}
	}
	if v := c.QueryParam("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Size = n
		} else {
			req.Size = 0
		}
	}
	req.SortBy = c.QueryParam("sortBy")
	req.SortDesc = c.QueryParam("sortDesc") == "true"
	return req
}

// idParam parses the numeric path parameter.
func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// fail maps service errors onto HTTP statuses.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, service.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountLocked),
		errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	default:
		log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
