package leveldb

import (
	metricsUtil "github.com/Conflux-Chain/go-conflux-util/metrics"
	"github.com/rcrowley/go-metrics"
)

type Metrics struct{}

func (m *Metrics) LastPage() metrics.Gauge {
	return metricsUtil.GetOrRegisterGauge("store/leveldb/lastPage")
}

func (m *Metrics) Write() metrics.Timer {
	return metricsUtil.GetOrRegisterTimer("store/leveldb/write")
}

func (m *Metrics) NumRecords() metrics.Histogram {
	return metricsUtil.GetOrRegisterHistogram("store/leveldb/num/records")
}
