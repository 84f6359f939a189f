package middleware

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long list responses stay cached when no TTL is
// configured.
const DefaultCacheTTL = 30 * time.Second

type bufferingWriter struct {
	http.ResponseWriter
	buf    *bytes.Buffer
	status int
}

func (w *bufferingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bufferingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheResponse serves GET responses from redis when a fresh copy exists.
// The cache key is the full request URI, so every page and sort combination
// caches separately. Writes elsewhere make entries stale for at most ttl.
func CacheResponse(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := "cache:" + c.Request().RequestURI

			ctx, cancel := context.WithTimeout(c.Request().Context(), 200*time.Millisecond)
			cached, err := rdb.Get(ctx, key).Bytes()
			cancel()
			if err == nil {
				return c.JSONBlob(http.StatusOK, cached)
			}
			if err != redis.Nil {
				log.Printf("cache: get %s: %v", key, err)
			}

			writer := &bufferingWriter{
				ResponseWriter: c.Response().Writer,
				buf:            &bytes.Buffer{},
				status:         http.StatusOK,
			}
			c.Response().Writer = writer

			if err := next(c); err != nil {
				return err
			}

			if writer.status == http.StatusOK && writer.buf.Len() > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				if err := rdb.Set(ctx, key, writer.buf.Bytes(), ttl).Err(); err != nil {
					log.Printf("cache: set %s: %v", key, err)
				}
				cancel()
			}
			return nil
		}
	}
}
