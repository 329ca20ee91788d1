package store

import (
	metricsUtil "github.com/Conflux-Chain/go-conflux-util/metrics"
	"github.com/rcrowley/go-metrics"
)

var storeMetrics Metrics

type Metrics struct{}

func (m *Metrics) Save() metrics.Timer {
	return metricsUtil.GetOrRegisterTimer("store/checkpoint/save")
}

func (m *Metrics) LastPage() metrics.Gauge {
	return metricsUtil.GetOrRegisterGauge("store/checkpoint/lastPage")
}
