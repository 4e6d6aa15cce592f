// Package metrics holds the prometheus collectors shared by the services
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts handled requests by service, route, method and status
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "apiexercises_http_requests_total",
		Help: "Total number of HTTP requests handled",
	},
	[]string{"service", "path", "method", "status"},
)

// HTTPRequestDuration records request latency by service, route and method
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "apiexercises_http_request_duration_seconds",
		Help:    "Latency in seconds of HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"service", "path", "method"},
)

// UploadedBytes counts bytes forwarded to object storage
var UploadedBytes = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "apiexercises_uploaded_bytes_total",
		Help: "Total number of bytes uploaded to object storage",
	},
)

// Database connection pool metrics
var (
	DBOpenConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "apiexercises_db_open_connections",
			Help: "Number of open connections in the DB pool",
		},
		[]string{"db"},
	)

	DBIdleConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "apiexercises_db_idle_connections",
			Help: "Number of idle connections in the DB pool",
		},
		[]string{"db"},
	)

	DBInUseConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "apiexercises_db_in_use_connections",
			Help: "Number of in-use connections in the DB pool",
		},
		[]string{"db"},
	)
)

// RecordDBStats publishes a pool snapshot under the given database label.
func RecordDBStats(db string, stats sql.DBStats) {
	DBOpenConns.WithLabelValues(db).Set(float64(stats.OpenConnections))
	DBIdleConns.WithLabelValues(db).Set(float64(stats.Idle))
	DBInUseConns.WithLabelValues(db).Set(float64(stats.InUse))
}

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, UploadedBytes)
	prometheus.MustRegister(DBOpenConns, DBIdleConns, DBInUseConns)
}
