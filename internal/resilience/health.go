package resilience

import (
	"sync"
	"time"
)

// Health thresholds driving degradation decisions.
const (
	// healthyMinSuccessRate is the minimum success rate for a healthy source.
	healthyMinSuccessRate = 0.5
	// healthyMaxConsecutiveFailures is the consecutive-failure ceiling for a
	// healthy source.
	healthyMaxConsecutiveFailures = 3
	// reducedCountSuccessRate is the rate below which batch sizes shrink.
	reducedCountSuccessRate = 0.7
	// adaptiveDelayFactor scales the delay per consecutive failure.
	adaptiveDelayFactor = 0.5
)

// HealthRecord holds rolling per-source success/failure statistics.
type HealthRecord struct {
	TotalAttempts       int64
	Successes           int64
	Failures            int64
	ConsecutiveFailures int
	// AvgResponseTime is exponentially smoothed: avg = (avg + rt) / 2.
	// The first sample seeds the average directly instead of averaging
	// against zero, which would report half the observed latency.
	AvgResponseTime time.Duration
	LastSuccessAt   time.Time
	LastFailureAt   time.Time
}

// SuccessRate returns successes/attempts, or 1.0 when nothing was attempted.
func (r HealthRecord) SuccessRate() float64 {
	if r.TotalAttempts == 0 {
		return 1.0
	}
	return float64(r.Successes) / float64(r.TotalAttempts)
}

// Healthy reports whether the record satisfies both health conditions.
func (r HealthRecord) Healthy() bool {
	return r.SuccessRate() >= healthyMinSuccessRate &&
		r.ConsecutiveFailures < healthyMaxConsecutiveFailures
}

// healthEntry pairs a record with its own lock so sources never contend
// with each other on updates.
type healthEntry struct {
	mu     sync.Mutex
	record HealthRecord
}

// HealthMonitor tracks one HealthRecord per source. The map itself is
// guarded separately from the per-source entries.
type HealthMonitor struct {
	mu      sync.RWMutex
	entries map[string]*healthEntry

	// now is swappable for tests.
	now func() time.Time
}

// NewHealthMonitor creates an empty health monitor.
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		entries: make(map[string]*healthEntry),
		now:     time.Now,
	}
}

// entry returns the entry for a source, creating it lazily on first use.
func (m *HealthMonitor) entry(source string) *healthEntry {
	m.mu.RLock()
	e, ok := m.entries[source]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.entries[source]; ok {
		return e
	}
	e = &healthEntry{}
	m.entries[source] = e
	return e
}

// RecordAttempt updates the source's record after one attempt.
// Consecutive failures reset to zero exactly on a recorded success.
func (m *HealthMonitor) RecordAttempt(source string, success bool, responseTime time.Duration) {
	e := m.entry(source)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.record.TotalAttempts++
	if e.record.AvgResponseTime == 0 {
		e.record.AvgResponseTime = responseTime
	} else {
		e.record.AvgResponseTime = (e.record.AvgResponseTime + responseTime) / 2
	}

	if success {
		e.record.Successes++
		e.record.ConsecutiveFailures = 0
		e.record.LastSuccessAt = m.now()
	} else {
		e.record.Failures++
		e.record.ConsecutiveFailures++
		e.record.LastFailureAt = m.now()
	}
}

// IsSourceHealthy reports whether the source currently passes both health
// checks. A source with no attempts yet is healthy.
func (m *HealthMonitor) IsSourceHealthy(source string) bool {
	return m.Record(source).Healthy()
}

// Record returns a snapshot of the source's health record.
func (m *HealthMonitor) Record(source string) HealthRecord {
	e := m.entry(source)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record
}

// Snapshot returns a copy of all records for reporting.
func (m *HealthMonitor) Snapshot() map[string]HealthRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]HealthRecord, len(m.entries))
	for source, e := range m.entries {
		e.mu.Lock()
		out[source] = e.record
		e.mu.Unlock()
	}
	return out
}
