// Package observability groups the logging, metrics and tracing infrastructure.
//
// Subpackages:
//   - logging: Structured logging utilities with slog and optional file rotation
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry provider setup and HTTP middleware
package observability
