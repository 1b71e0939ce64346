package metrics

import (
	"database/sql"
	"time"
)

// RecordContentOperation counts one use case invocation.
// Result should be one of "success", "not_found", "invalid" or "error".
func RecordContentOperation(kind, operation, result string) {
	ContentOperationsTotal.WithLabelValues(kind, operation, result).Inc()
}

// RecordDownloadHit counts a successful hit increment.
func RecordDownloadHit() {
	DownloadHitsTotal.Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query (e.g., "news.list", "download.increment_hits").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBStats copies connection pool statistics into the pool gauges.
func UpdateDBStats(stats sql.DBStats) {
	DBConnectionsActive.Set(float64(stats.InUse))
	DBConnectionsIdle.Set(float64(stats.Idle))
}

// SetCircuitBreakerState publishes a breaker state as a gauge value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
