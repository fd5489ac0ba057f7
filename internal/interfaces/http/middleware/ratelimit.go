package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stepsign/internal/infrastructure/ratelimit"
	"stepsign/internal/shared/logger"
	"stepsign/internal/shared/utils"
)

// ClaimRateLimit throttles claim submissions per client IP. A limiter
// failure admits the request: the transactional daily cap is the real
// guard, this only softens bursts.
func ClaimRateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, admitting request",
				"error", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many claim submissions, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
