// Package metrics exposes Prometheus counters for batch runs. Metrics are
// scraped from the serve-mode HTTP server; one-shot CLI runs register them
// but never serve them, which is harmless.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates the engine-level observations of a processing run.
type Collector struct {
	employeesProcessed prometheus.Counter
	punchesMigrated    prometheus.Counter
	unpairedPunches    prometheus.Counter
	crossMidnightDays  prometheus.Counter
	batchDuration      prometheus.Histogram
}

// NewCollector creates and registers the collectors on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		employeesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "punchclock_employees_processed_total",
			Help: "Total number of employees whose punches were reconciled",
		}),
		punchesMigrated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "punchclock_punches_migrated_total",
			Help: "Total day2 punches migrated to day1 by cross-midnight reconciliation",
		}),
		unpairedPunches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "punchclock_unpaired_punches_total",
			Help: "Total trailing punches that had no matching partner",
		}),
		crossMidnightDays: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "punchclock_cross_midnight_employees_total",
			Help: "Total employees flagged with a cross-midnight shift",
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "punchclock_batch_duration_seconds",
			Help:    "Wall time of one full batch run",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		c.employeesProcessed,
		c.punchesMigrated,
		c.unpairedPunches,
		c.crossMidnightDays,
		c.batchDuration,
	)
	return c
}

func (c *Collector) ObserveEmployee(migrated, unpaired int) {
	c.employeesProcessed.Inc()
	c.punchesMigrated.Add(float64(migrated))
	c.unpairedPunches.Add(float64(unpaired))
	if migrated > 0 {
		c.crossMidnightDays.Inc()
	}
}

func (c *Collector) ObserveBatch(seconds float64) {
	c.batchDuration.Observe(seconds)
}
