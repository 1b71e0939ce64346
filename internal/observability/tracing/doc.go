// Package tracing provides OpenTelemetry tracing integration: provider setup with an
// optional OTLP/HTTP exporter, HTTP server spans and helpers for use case spans.
package tracing
