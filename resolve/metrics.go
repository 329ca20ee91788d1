package resolve

import (
	metricsUtil "github.com/Conflux-Chain/go-conflux-util/metrics"
	"github.com/rcrowley/go-metrics"
)

var resolverMetrics Metrics

type Metrics struct{}

// Batch returns a timer for measuring the time to resolve a batch of contracts.
func (m *Metrics) Batch() metrics.Timer {
	return metricsUtil.GetOrRegisterTimer("resolve/batch")
}

// Outcomes returns a histogram for measuring the number of outcomes of the given kind in a batch.
func (m *Metrics) Outcomes(kind string) metrics.Histogram {
	return metricsUtil.GetOrRegisterHistogram("resolve/outcomes/%v", kind)
}
