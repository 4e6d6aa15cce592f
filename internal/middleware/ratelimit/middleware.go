package ratelimit

import (
	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrTooManyLoginAttempts is returned once a client exhausts its login budget
var ErrTooManyLoginAttempts = errors.TooManyRequests.Explain("Too many login attempts, try again later.")

// Middleware limits requests per client IP. Limiter failures let the request
// through so a redis outage never locks users out.
func Middleware(limiter Limiter, logger *zap.Logger, rejection *errors.Error) gin.HandlerFunc {
	if rejection == nil {
		rejection = errors.TooManyRequests.Explain("Too many requests")
	}
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("path", c.FullPath()), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			apiutil.Abort(c, rejection)
			return
		}
		c.Next()
	}
}
