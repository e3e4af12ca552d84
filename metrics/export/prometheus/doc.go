// Package prometheus renders engine metrics in Prometheus text exposition
// format without taking a dependency on the Prometheus client library.
package prometheus
