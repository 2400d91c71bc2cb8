package collectors

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MiningMetrics holds the instruments the mine loop pushes into. It
// implements prometheus.Collector so it can be registered alongside the
// scrape-time collectors.
type MiningMetrics struct {
	blocksMined prometheus.Counter
	hashesTried prometheus.Counter
	duration    prometheus.Histogram
}

func NewMiningMetrics() *MiningMetrics {
	return &MiningMetrics{
		blocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quub",
			Subsystem: "mining",
			Name:      "blocks_total",
			Help:      "Blocks sealed by the mine loop",
		}),
		hashesTried: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quub",
			Subsystem: "mining",
			Name:      "hashes_total",
			Help:      "Nonce attempts spent sealing blocks",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quub",
			Subsystem: "mining",
			Name:      "duration_seconds",
			Help:      "Wall-clock seconds spent sealing a block",
		}),
	}
}

// ObserveBlock records one sealed block: the nonce attempts it took and how
// long the search ran.
func (m *MiningMetrics) ObserveBlock(attempts uint64, elapsed time.Duration) {
	m.blocksMined.Inc()
	m.hashesTried.Add(float64(attempts))
	m.duration.Observe(elapsed.Seconds())
}

func (m *MiningMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.blocksMined.Describe(ch)
	m.hashesTried.Describe(ch)
	m.duration.Describe(ch)
}

func (m *MiningMetrics) Collect(ch chan<- prometheus.Metric) {
	m.blocksMined.Collect(ch)
	m.hashesTried.Collect(ch)
	m.duration.Collect(ch)
}
