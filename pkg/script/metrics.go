package script

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	ops         *prometheus.CounterVec
	errors      prometheus.Counter
	lists       prometheus.Gauge
	runDuration prometheus.Histogram
}

func newMetrics() *metrics {
	return &metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "script_ops_total",
			Help: "The total number of executed script steps, by op",
		}, []string{"op"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "script_errors_total",
			Help: "The total number of failed script steps",
		}),
		lists: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "script_lists",
			Help: "The number of named lists held by the runner",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "script_run_duration_seconds",
			Help:    "The duration of script runs",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.ops, m.errors, m.lists, m.runDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
