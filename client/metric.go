package client

import (
	"sync/atomic"
)

// ConnectionMetrics contains atomic metrics for a SIP2 connection.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ConnectionMetrics struct {
	// ExchangeCount indicates the number of logical exchanges started.
	ExchangeCount atomic.Uint64
	// ExchangeErrCount indicates the number of exchanges that failed permanently.
	ExchangeErrCount atomic.Uint64
	// RetryCount indicates the total number of exchange resends.
	RetryCount atomic.Uint64
	// ChecksumFailCount indicates the number of frames that failed checksum validation.
	ChecksumFailCount atomic.Uint64
	// SendErrCount indicates the number of transport write failures.
	SendErrCount atomic.Uint64
}

func (m *ConnectionMetrics) incExchangeCount() {
	m.ExchangeCount.Add(1)
}

func (m *ConnectionMetrics) incExchangeErrCount() {
	m.ExchangeErrCount.Add(1)
}

func (m *ConnectionMetrics) incRetryCount() {
	m.RetryCount.Add(1)
}

func (m *ConnectionMetrics) incChecksumFailCount() {
	m.ChecksumFailCount.Add(1)
}

func (m *ConnectionMetrics) incSendErrCount() {
	m.SendErrCount.Add(1)
}
