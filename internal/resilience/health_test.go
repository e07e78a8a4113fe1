package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitor_SuccessRate(t *testing.T) {
	t.Parallel()

	m := NewHealthMonitor()
	m.RecordAttempt("lemonde", true, 100*time.Millisecond)
	m.RecordAttempt("lemonde", false, 100*time.Millisecond)
	m.RecordAttempt("lemonde", true, 100*time.Millisecond)
	m.RecordAttempt("lemonde", false, 100*time.Millisecond)

	rec := m.Record("lemonde")
	assert.InDelta(t, 0.5, rec.SuccessRate(), 1e-9)
	assert.Equal(t, int64(4), rec.TotalAttempts)
	assert.Equal(t, int64(2), rec.Successes)
	assert.Equal(t, int64(2), rec.Failures)

	// Rate 0.5 with one consecutive failure is still healthy.
	assert.True(t, m.IsSourceHealthy("lemonde"))
}

func TestHealthMonitor_ConsecutiveFailuresMakeUnhealthy(t *testing.T) {
	t.Parallel()

	m := NewHealthMonitor()
	for range 3 {
		m.RecordAttempt("lefigaro", true, time.Millisecond)
	}
	for range 3 {
		m.RecordAttempt("lefigaro", false, time.Millisecond)
	}

	// Success rate is exactly 0.5 but three consecutive failures trip the
	// second condition.
	rec := m.Record("lefigaro")
	assert.InDelta(t, 0.5, rec.SuccessRate(), 1e-9)
	assert.Equal(t, 3, rec.ConsecutiveFailures)
	assert.False(t, m.IsSourceHealthy("lefigaro"))

	// One success resets the streak and restores health.
	m.RecordAttempt("lefigaro", true, time.Millisecond)
	assert.Equal(t, 0, m.Record("lefigaro").ConsecutiveFailures)
	assert.True(t, m.IsSourceHealthy("lefigaro"))
}

func TestHealthMonitor_UnknownSourceIsHealthy(t *testing.T) {
	t.Parallel()

	m := NewHealthMonitor()
	assert.True(t, m.IsSourceHealthy("jamais-vu"))
	assert.InDelta(t, 1.0, m.Record("jamais-vu").SuccessRate(), 1e-9)
}

func TestHealthMonitor_ResponseTimeSmoothing(t *testing.T) {
	t.Parallel()

	m := NewHealthMonitor()
	m.RecordAttempt("lemonde", true, 100*time.Millisecond)
	require.Equal(t, 100*time.Millisecond, m.Record("lemonde").AvgResponseTime)

	m.RecordAttempt("lemonde", true, 200*time.Millisecond)
	assert.Equal(t, 150*time.Millisecond, m.Record("lemonde").AvgResponseTime)

	m.RecordAttempt("lemonde", true, 50*time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, m.Record("lemonde").AvgResponseTime)
}

func TestHealthMonitor_Timestamps(t *testing.T) {
	t.Parallel()

	m := NewHealthMonitor()
	stamp := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return stamp }

	m.RecordAttempt("lemonde", true, time.Millisecond)
	m.RecordAttempt("lemonde", false, time.Millisecond)

	rec := m.Record("lemonde")
	assert.Equal(t, stamp, rec.LastSuccessAt)
	assert.Equal(t, stamp, rec.LastFailureAt)
}

func TestHealthMonitor_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewHealthMonitor()
	m.RecordAttempt("lemonde", true, time.Millisecond)
	m.RecordAttempt("lefigaro", false, time.Millisecond)

	snap := m.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, int64(1), snap["lemonde"].Successes)
	assert.Equal(t, int64(1), snap["lefigaro"].Failures)
}
