package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	RegisterCollectorFactory(func(chain ChainReader, extraParams ...interface{}) (prometheus.Collector, error) {
		return NewChainInfoCollector(chain), nil
	})
}

type ChainInfoCollector struct {
	chain          ChainReader
	chainLength    *prometheus.Desc
	difficulty     *prometheus.Desc
	pendingRecords *prometheus.Desc
}

func NewChainInfoCollector(chain ChainReader) *ChainInfoCollector {
	return &ChainInfoCollector{
		chain: chain,
		chainLength: prometheus.NewDesc(
			prometheus.BuildFQName("quub", "chain", "length"),
			"Number of blocks in the chain, genesis included",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
		difficulty: prometheus.NewDesc(
			prometheus.BuildFQName("quub", "chain", "difficulty"),
			"Proof-of-work difficulty blocks are sealed at",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
		pendingRecords: prometheus.NewDesc(
			prometheus.BuildFQName("quub", "chain", "pending_records"),
			"Records buffered and waiting to be sealed into a block",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *ChainInfoCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.chainLength
	ch <- c.difficulty
	ch <- c.pendingRecords
}

func (c *ChainInfoCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.chainLength, prometheus.GaugeValue, float64(c.chain.Length()))
	ch <- prometheus.MustNewConstMetric(c.difficulty, prometheus.GaugeValue, float64(c.chain.Difficulty()))
	ch <- prometheus.MustNewConstMetric(c.pendingRecords, prometheus.GaugeValue, float64(c.chain.PendingCount()))
}
