// Package otel bridges engine metrics into an OpenTelemetry meter using
// observable instruments, so snapshots are pulled on collection rather than
// pushed per event.
package otel
