// Package internaldefs holds the shared metric definitions and bucket math
// used by the Prometheus and OpenTelemetry exporters. It exists so both
// exporters render identical names and semantics without importing each
// other.
package internaldefs
