// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Content operation and download hit counters
//   - Database query and connection pool metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "dinas-portal/internal/observability/metrics"
//
//	func record(ctx context.Context) {
//	    start := time.Now()
//	    // ... run query ...
//	    metrics.RecordDBQuery("news.list", time.Since(start))
//	    metrics.RecordContentOperation("news", "list", "success")
//	}
package metrics
