package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logger emits one structured line per request. Server errors log at
// error, client errors at warn, health checks at debug so they do not
// drown the request log.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			res := c.Response()
			evt := logger.Info()
			switch {
			case err != nil || res.Status >= 500:
				evt = logger.Error().Err(err)
			case res.Status >= 400:
				evt = logger.Warn()
			case req.URL.Path == "/health" || req.URL.Path == "/health/db":
				evt = logger.Debug()
			}

			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
