package sync

import (
	metricsUtil "github.com/Conflux-Chain/go-conflux-util/metrics"
	"github.com/rcrowley/go-metrics"
)

var syncMetrics Metrics

type Metrics struct{}

// Page returns a timer for measuring the time to process a page.
func (m *Metrics) Page() metrics.Timer {
	return metricsUtil.GetOrRegisterTimer("sync/discovery/page")
}

// LastPage returns a gauge of the next page to process.
func (m *Metrics) LastPage() metrics.Gauge {
	return metricsUtil.GetOrRegisterGauge("sync/discovery/lastPage")
}

// CheckpointSize returns a gauge of the memory size in bytes of checkpoint.
func (m *Metrics) CheckpointSize() metrics.Gauge {
	return metricsUtil.GetOrRegisterGauge("sync/discovery/checkpoint/size")
}
