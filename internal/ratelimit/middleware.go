package ratelimit

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/ZanzyTHEbar/country-rank-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/monitoring"
)

// Middleware rejects requests from clients that exceed the configured rate.
func Middleware(rl *RateLimiter, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			if metrics != nil {
				metrics.RateLimitedTotal.Inc()
			}
			appErr := apperrors.NewRateLimitError("60s")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}
		c.Next()
	}
}
