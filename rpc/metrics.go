package rpc

import (
	metricsUtil "github.com/Conflux-Chain/go-conflux-util/metrics"
	"github.com/rcrowley/go-metrics"
)

var rpcMetrics Metrics

type Metrics struct{}

// Dial returns a timer for measuring the time to establish grpc connections.
func (m *Metrics) Dial(success bool) metrics.Timer {
	if success {
		return metricsUtil.GetOrRegisterTimer("rpc/dial/success")
	}

	return metricsUtil.GetOrRegisterTimer("rpc/dial/failure")
}

// Latency returns a timer for measuring the latency of the given grpc method.
func (m *Metrics) Latency(method string, success bool) metrics.Timer {
	if success {
		return metricsUtil.GetOrRegisterTimer("rpc/%v/latency/success", method)
	}

	return metricsUtil.GetOrRegisterTimer("rpc/%v/latency/failure", method)
}

// NumTxs returns a histogram for measuring the number of transactions in a page.
func (m *Metrics) NumTxs() metrics.Histogram {
	return metricsUtil.GetOrRegisterHistogram("rpc/getTxsEvent/num/txs")
}
