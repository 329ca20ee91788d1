package extract

import (
	metricsUtil "github.com/Conflux-Chain/go-conflux-util/metrics"
	"github.com/rcrowley/go-metrics"
)

var parserMetrics Metrics

type Metrics struct{}

// Mentions returns a histogram for measuring the number of contract mentions parsed from a transaction.
func (m *Metrics) Mentions() metrics.Histogram {
	return metricsUtil.GetOrRegisterHistogram("extract/instantiate/mentions")
}
