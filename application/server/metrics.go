package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sdt-sys/sdt-go/protocol"
)

// metrics counts the handled commands of a server. Every server owns
// its registry, so several servers can live in one process.
type metrics struct {
	registry    *prometheus.Registry
	commands    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	credentials prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sdt",
			Name:      "commands_total",
			Help:      "Number of handled commands by kind and result.",
		}, []string{"cmd", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sdt",
			Name:      "command_duration_seconds",
			Help:      "Time spent handling a command.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"cmd"}),
		credentials: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sdt",
			Name:      "credentials_issued",
			Help:      "Number of inceptions persisted since start.",
		}),
	}
	m.registry.MustRegister(m.commands, m.duration, m.credentials)
	return m
}

func (m *metrics) observe(kind protocol.CommandKind, res *protocol.Result, start time.Time) {
	result := "ok"
	if res.Failed() {
		result = string(res.ErrorKind)
	}
	m.commands.WithLabelValues(string(kind), result).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
