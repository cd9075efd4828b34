// Package metric provides Prometheus metrics for RedisGate.
//
// The client records commands issued, command failures and command
// round-trip latency. Metrics are optional: a nil *Registry disables
// collection entirely.
package metric
