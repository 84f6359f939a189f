package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func TestCacheResponseServesSecondHit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hits := 0
	e := echo.New()
	e.GET("/api/Campaign/GetAllCampaigns", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, echo.Map{"items": []string{"spring push"}})
	}, CacheResponse(rdb, 0))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/Campaign/GetAllCampaigns?pageNumber=1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, rec.Code)
		}
		if rec.Body.Len() == 0 {
			t.Fatalf("request %d: empty body", i+1)
		}
	}
	if hits != 1 {
		t.Fatalf("handler ran %d times, want 1", hits)
	}
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hits := 0
	e := echo.New()
	e.GET("/api/Budget/ViewAllBudgets", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, echo.Map{"page": c.QueryParam("pageNumber")})
	}, CacheResponse(rdb, 0))

	for _, page := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/Budget/ViewAllBudgets?pageNumber="+page, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
	}
	if hits != 2 {
		t.Fatalf("handler ran %d times, want 2 (distinct pages)", hits)
	}
}

func TestCacheSkipsNonGet(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hits := 0
	e := echo.New()
	e.POST("/api/Campaign/PlanCampaign", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusCreated, echo.Map{"ok": true})
	}, CacheResponse(rdb, 0))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/Campaign/PlanCampaign", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
	}
	if hits != 2 {
		t.Fatalf("handler ran %d times, want 2", hits)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("POST responses cached: %v", mr.Keys())
	}
}
