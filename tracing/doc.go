// Package tracing is a thin wrapper around OpenTelemetry so that simulator
// operations can be recorded as spans without importing otel everywhere.
//
// Tracing is off until Init or InitWithExporter installs a provider; before
// that spans are no-ops.
package tracing
