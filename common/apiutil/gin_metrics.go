package apiutil

import (
	"strconv"
	"time"

	"github.com/Aidin1998/apiexercises/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records HTTP request counts and durations for Prometheus
func MetricsMiddleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		// Use full route path (e.g., /recipe/:id)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(service, path, method, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(service, path, method).Observe(time.Since(start).Seconds())
	}
}
