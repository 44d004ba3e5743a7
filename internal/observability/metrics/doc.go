// Package metrics defines the Prometheus collectors of the service.
//
// All collectors are registered with the default registry through promauto
// and exposed on /metrics by the api and worker binaries.
package metrics
