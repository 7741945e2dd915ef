package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/webware/award-board/internal/api/award"
	"github.com/webware/award-board/internal/api/metrics"
)

// WindowCounter abstracts the fixed-window hit counter (Redis).
type WindowCounter interface {
	Hit(ctx context.Context, route, key string) (int64, error)
}

// RateLimit bounds request frequency per session on one route: max hits per
// fixed window, the overflow resolving to a terminal 429. Counting is
// best-effort — a broken counter lets the request through rather than
// failing it. Runs after RequireLogin, so a session token is always present.
func RateLimit(counter WindowCounter, route string, max int64, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := SessionTokenFrom(c)
			if !ok {
				key = c.RealIP()
			}

			n, err := counter.Hit(c.Request().Context(), route, key)
			if err != nil {
				log.Warn().Err(err).Str("route", route).Msg("rate counter unavailable, letting request pass")
				return next(c)
			}

			if n > max {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				award.FromContext(c).Terminal(http.StatusTooManyRequests)
				return nil
			}

			return next(c)
		}
	}
}
