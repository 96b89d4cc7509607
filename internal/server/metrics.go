package server

import (
	"sync/atomic"
	"time"

	"github.com/Brownie44l1/tinyhttp/internal/response"
)

// Metrics holds server runtime counters. All fields are safe for
// concurrent use.
type Metrics struct {
	RequestsTotal     atomic.Int64
	ActiveConnections atomic.Int64
	OK                atomic.Int64
	Created           atomic.Int64
	NotFound          atomic.Int64
	Success           atomic.Int64
	Errors4xx         atomic.Int64

	TotalLatencyNs atomic.Int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRequest records a completed request
func (m *Metrics) RecordRequest(statusCode int, duration time.Duration) {
	m.RequestsTotal.Add(1)
	m.TotalLatencyNs.Add(duration.Nanoseconds())

	code := response.StatusCode(statusCode)
	if code.IsSuccess() {
		m.Success.Add(1)
	} else if code.IsClientError() {
		m.Errors4xx.Add(1)
	}

	switch code {
	case response.StatusOK:
		m.OK.Add(1)
	case response.StatusCreated:
		m.Created.Add(1)
	case response.StatusNotFound:
		m.NotFound.Add(1)
	}
}

// AverageLatency returns average request latency
func (m *Metrics) AverageLatency() time.Duration {
	totalReqs := m.RequestsTotal.Load()
	if totalReqs == 0 {
		return 0
	}
	return time.Duration(m.TotalLatencyNs.Load() / totalReqs)
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	RequestsTotal     int64
	ActiveConnections int64
	OK                int64
	Created           int64
	NotFound          int64
	Success           int64
	Errors4xx         int64
	AverageLatency    time.Duration
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:     m.RequestsTotal.Load(),
		ActiveConnections: m.ActiveConnections.Load(),
		OK:                m.OK.Load(),
		Created:           m.Created.Load(),
		NotFound:          m.NotFound.Load(),
		Success:           m.Success.Load(),
		Errors4xx:         m.Errors4xx.Load(),
		AverageLatency:    m.AverageLatency(),
	}
}
