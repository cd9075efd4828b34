package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the client command metrics.
type Registry struct {
	// CommandsTotal counts commands issued, by command name.
	CommandsTotal *prometheus.CounterVec

	// CommandErrors counts failed commands, by command name.
	CommandErrors *prometheus.CounterVec

	// CommandDuration samples command round-trip latency, by command
	// name.
	CommandDuration *prometheus.HistogramVec
}

// NewRegistry creates the command metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer to use the default registry.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redisgate",
			Subsystem: "client",
			Name:      "commands_total",
			Help:      "Total commands issued.",
		}, []string{"command"}),

		CommandErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redisgate",
			Subsystem: "client",
			Name:      "command_errors_total",
			Help:      "Total failed commands.",
		}, []string{"command"}),

		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "redisgate",
			Subsystem: "client",
			Name:      "command_duration_seconds",
			Help:      "Command round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}
}

// ObserveCommand records one command observation. Safe on a nil
// registry.
func (r *Registry) ObserveCommand(command string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.CommandsTotal.WithLabelValues(command).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
	if err != nil {
		r.CommandErrors.WithLabelValues(command).Inc()
	}
}
