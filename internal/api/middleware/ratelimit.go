package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/api/metrics"
	"github.com/actionauto/crm-api/internal/infrastructure/db/redis"
)

// RateLimit enforces a per-client-IP request quota backed by Redis. When the
// limiter itself fails (Redis down), requests pass through so the API stays
// available without its quota.
func RateLimit(limiter *redis.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests,
					"Too many requests from this IP, please try again later")
			}
			return next(c)
		}
	}
}
