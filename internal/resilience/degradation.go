package resilience

import (
	"math"
	"time"
)

// Degradation derives throttling decisions from source health.
type Degradation struct {
	health *HealthMonitor
}

// NewDegradation creates a Degradation view over a health monitor.
func NewDegradation(health *HealthMonitor) *Degradation {
	return &Degradation{health: health}
}

// ShouldSkipSource reports whether a source is unhealthy enough to skip for
// this run.
func (d *Degradation) ShouldSkipSource(source string) bool {
	return !d.health.IsSourceHealthy(source)
}

// ReducedCount trims a batch size proportionally to the source's success
// rate once the rate drops below the reduction threshold. Never returns
// less than 1.
func (d *Degradation) ReducedCount(source string, n int) int {
	rate := d.health.Record(source).SuccessRate()
	if rate >= reducedCountSuccessRate {
		return n
	}
	reduced := int(math.Floor(float64(n) * rate))
	if reduced < 1 {
		return 1
	}
	return reduced
}

// AdaptiveDelay stretches a base delay as consecutive failures accumulate.
func (d *Degradation) AdaptiveDelay(source string, base time.Duration) time.Duration {
	failures := d.health.Record(source).ConsecutiveFailures
	return time.Duration(float64(base) * (1 + float64(failures)*adaptiveDelayFactor))
}
