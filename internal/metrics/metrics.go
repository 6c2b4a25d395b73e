// Package metrics exposes relay counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/dkeye/Relay/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Relay holds the relay collectors on a private registry.
// A nil *Relay is valid and records nothing.
type Relay struct {
	reg *prometheus.Registry

	joins    prometheus.Counter
	chats    prometheus.Counter
	sends    prometheus.Counter
	failures prometheus.Counter
	skipped  prometheus.Counter
	members  prometheus.Gauge
}

func New() *Relay {
	m := &Relay{
		reg: prometheus.NewRegistry(),
		joins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_joins_total",
			Help: "Join requests applied to the registry.",
		}),
		chats: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_chats_total",
			Help: "Chat messages routed.",
		}),
		sends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_sends_total",
			Help: "Frames queued to recipients.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_send_failures_total",
			Help: "Recipient sends that failed.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_skipped_total",
			Help: "Recipients skipped because their connection was not open.",
		}),
		members: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_members",
			Help: "Sessions currently joined to a room.",
		}),
	}
	m.reg.MustRegister(
		m.joins, m.chats, m.sends, m.failures, m.skipped, m.members,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Relay) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Relay) Joined() {
	if m == nil {
		return
	}
	m.joins.Inc()
}

func (m *Relay) Published(res core.PublishResult) {
	if m == nil {
		return
	}
	m.chats.Inc()
	m.sends.Add(float64(res.SendTo))
	m.failures.Add(float64(len(res.Dropped)))
	m.skipped.Add(float64(res.Skipped))
}

func (m *Relay) SetMembers(n int) {
	if m == nil {
		return
	}
	m.members.Set(float64(n))
}
