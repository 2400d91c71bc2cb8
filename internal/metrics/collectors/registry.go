package collectors

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// ChainReader is the read-only view of the ledger that collectors scrape.
// *ledger.Chain satisfies it.
type ChainReader interface {
	Length() int
	Difficulty() int
	PendingCount() int
}

// CollectorFactory is a function type that creates a collector with provided parameters
type CollectorFactory func(chain ChainReader, extraParams ...interface{}) (prometheus.Collector, error)

type Registry struct {
	factories []CollectorFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make([]CollectorFactory, 0),
	}
}

func (r *Registry) Register(factory CollectorFactory) {
	r.factories = append(r.factories, factory)
}

// CreateCollectors instantiates all collectors using the provided parameters
func (r *Registry) CreateCollectors(chain ChainReader, extraParams ...interface{}) ([]prometheus.Collector, error) {
	if chain == nil {
		return nil, errors.New("chain reader is nil")
	}

	collectors := make([]prometheus.Collector, 0, len(r.factories))
	for _, factory := range r.factories {
		collector, err := factory(chain, extraParams...)
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, collector)
	}
	return collectors, nil
}

var DefaultRegistry = NewRegistry()

func RegisterCollectorFactory(factory CollectorFactory) {
	DefaultRegistry.Register(factory)
}
