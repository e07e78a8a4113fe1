package domain

import "time"

// lowYieldThreshold flags sources whose processed/attempted ratio indicates
// a likely selector or availability problem.
const lowYieldThreshold = 0.3

// ProcessingResult summarizes one source's run. It is derived state only and
// never persisted.
type ProcessingResult struct {
	Source    string
	Processed int
	Attempted int
	Elapsed   time.Duration
	// Degraded is set when the source was skipped or trimmed by the
	// health monitor during this run.
	Degraded bool
	// Err records a source-level failure, if any. Per-article failures
	// only show up in the counts.
	Err error
}

// SuccessRate returns processed/attempted, or 1.0 when nothing was attempted.
func (r ProcessingResult) SuccessRate() float64 {
	if r.Attempted == 0 {
		return 1.0
	}
	return float64(r.Processed) / float64(r.Attempted)
}

// LowYield reports whether the source produced suspiciously few articles
// relative to what it attempted.
func (r ProcessingResult) LowYield() bool {
	return r.Attempted > 0 && r.SuccessRate() < lowYieldThreshold
}

// RunResult aggregates results across all sources in a run.
type RunResult struct {
	Sources   []ProcessingResult
	StartedAt time.Time
	Elapsed   time.Duration
}

// TotalProcessed sums processed counts across sources.
func (r RunResult) TotalProcessed() int {
	total := 0
	for _, s := range r.Sources {
		total += s.Processed
	}
	return total
}

// TotalAttempted sums attempted counts across sources.
func (r RunResult) TotalAttempted() int {
	total := 0
	for _, s := range r.Sources {
		total += s.Attempted
	}
	return total
}
