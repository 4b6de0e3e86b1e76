package pool

import "github.com/prometheus/client_golang/prometheus"

var (
	endpointsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pool_endpoints",
		Help: "Current number of endpoints known to a pool.",
	}, []string{"pool"})

	updatesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pool_updates_total",
		Help: "Count of service-discovery updates applied to a pool, by kind.",
	}, []string{"pool", "kind"})
)

// MustRegister registers the pool package's metric families with registerer.
// Call it once per process, regardless of how many pools are constructed;
// each pool acquires its own handles by looking up the family with its own
// label set (see newMetrics).
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(endpointsGauge, updatesCounter)
}

// metrics holds the per-pool metric handles acquired from the registered
// families above.
type metrics struct {
	endpoints prometheus.Gauge
	reset     prometheus.Counter
	add       prometheus.Counter
	remove    prometheus.Counter
	dne       prometheus.Counter
}

func newMetrics(name string) metrics {
	return metrics{
		endpoints: endpointsGauge.WithLabelValues(name),
		reset:     updatesCounter.WithLabelValues(name, UpdateReset.String()),
		add:       updatesCounter.WithLabelValues(name, UpdateAdd.String()),
		remove:    updatesCounter.WithLabelValues(name, UpdateRemove.String()),
		dne:       updatesCounter.WithLabelValues(name, UpdateDoesNotExist.String()),
	}
}

func (m metrics) countUpdate(kind UpdateKind) {
	switch kind {
	case UpdateReset:
		m.reset.Inc()
	case UpdateAdd:
		m.add.Inc()
	case UpdateRemove:
		m.remove.Inc()
	case UpdateDoesNotExist:
		m.dne.Inc()
	}
}
