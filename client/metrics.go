package client

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// Metrics collects per-client request counters. Counter updates are
// atomic so a shared client can record from concurrent callers.
type Metrics struct {
	mu sync.RWMutex

	requests  int64 // Total requests dispatched
	failures  int64 // Requests that ended in any error class
	roundTrip time.Duration
	startTime time.Time
}

// NewMetrics creates a Metrics instance anchored at the current time.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// RecordRequest counts one dispatched request and its round-trip time.
func (m *Metrics) RecordRequest(d time.Duration) {
	atomic.AddInt64(&m.requests, 1)
	m.mu.Lock()
	m.roundTrip += d
	m.mu.Unlock()
}

// RecordFailure counts one failed request.
func (m *Metrics) RecordFailure() {
	atomic.AddInt64(&m.failures, 1)
}

// Report is a point-in-time snapshot of the client's counters.
type Report struct {
	Since        time.Time     `json:"since"`
	Requests     int64         `json:"requests"`
	Failures     int64         `json:"failures"`
	AvgRoundTrip time.Duration `json:"avgRoundTrip"`
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Report {
	requests := atomic.LoadInt64(&m.requests)

	m.mu.RLock()
	total := m.roundTrip
	m.mu.RUnlock()

	var avg time.Duration
	if requests > 0 {
		avg = total / time.Duration(requests)
	}
	return Report{
		Since:        m.startTime,
		Requests:     requests,
		Failures:     atomic.LoadInt64(&m.failures),
		AvgRoundTrip: avg,
	}
}

// MarshalJSON formats durations as strings for readable report output.
func (r Report) MarshalJSON() ([]byte, error) {
	type Alias Report
	return json.Marshal(&struct {
		Alias
		AvgRoundTrip string `json:"avgRoundTrip"`
	}{
		Alias:        Alias(r),
		AvgRoundTrip: r.AvgRoundTrip.String(),
	})
}

// String renders a human-readable counter summary.
func (r Report) String() string {
	return fmt.Sprintf("%d requests (%d failed), avg round trip %s", r.Requests, r.Failures, r.AvgRoundTrip)
}
