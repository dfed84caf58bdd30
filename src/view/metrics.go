package view

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"gameoflife/src/universe"
)

//Metrics is the viewer which exports the simulation status as Prometheus metrics
type Metrics struct {
	u universe.Universe

	generation   prometheus.Gauge
	liveCells    prometheus.Gauge
	running      prometheus.Gauge
	stepDuration prometheus.Histogram
	refreshes    prometheus.Counter

	mu             sync.Mutex
	lastGeneration int
}

//NewMetrics creates the metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gameoflife",
			Name:      "generation",
			Help:      "Completed generations since the last reset.",
		}),
		liveCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gameoflife",
			Name:      "live_cells",
			Help:      "Number of alive cells in the current generation.",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gameoflife",
			Name:      "running",
			Help:      "1 while the periodic driver is active.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gameoflife",
			Name:      "step_duration_seconds",
			Help:      "Time spent calculating one generation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gameoflife",
			Name:      "refreshes_total",
			Help:      "Change notifications received from the simulation.",
		}),
	}
	for _, c := range []prometheus.Collector{m.generation, m.liveCells, m.running, m.stepDuration, m.refreshes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Register(u universe.Universe) {
	m.u = u
}

//Refresh observes the step duration once per new generation
func (m *Metrics) Refresh() {
	st := m.u.Status()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes.Inc()
	m.generation.Set(float64(st.Generation))
	m.liveCells.Set(float64(st.LiveCells))
	if st.RunningMode == universe.RunningStateRunning {
		m.running.Set(1)
	} else {
		m.running.Set(0)
	}
	if st.Generation != m.lastGeneration && st.IterationTime > 0 {
		m.stepDuration.Observe(st.IterationTime.Seconds())
	}
	m.lastGeneration = st.Generation
}
