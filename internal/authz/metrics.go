package authz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts gate resolutions by decision and server-side reason.
type Metrics struct {
	Decisions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "rabni",
			Name:      "admin_gate_decisions_total",
			Help:      "Admin gate resolutions by decision and reason",
		}, []string{"decision", "reason"}),
	}
}

func (m *Metrics) observe(d Decision, reason string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(d.String(), reason).Inc()
}
