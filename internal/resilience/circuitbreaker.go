package resilience

import (
	"sync"
	"time"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int32

const (
	// CircuitClosed means calls pass through normally.
	CircuitClosed CircuitState = iota
	// CircuitOpen means calls fail fast without invoking the target.
	CircuitOpen
	// CircuitHalfOpen means a single probe call is allowed through.
	CircuitHalfOpen
)

// String returns the string representation of a circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// DefaultFailureThreshold opens the circuit after this many consecutive
// failures.
const DefaultFailureThreshold = 5

// CircuitBreaker guards a single source. Safe for concurrent use.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            CircuitState
	failureCount     int
	openedAt         time.Time
	failureThreshold int
	recoveryTimeout  time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(failureThreshold int, recoveryTimeout time.Duration) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = DefaultFailureThreshold
	}
	return &CircuitBreaker{
		state:            CircuitClosed,
		failureThreshold: failureThreshold,
		recoveryTimeout:  recoveryTimeout,
		now:              time.Now,
	}
}

// Call invokes fn unless the circuit is open. While open and inside the
// recovery window it returns ErrCircuitOpen without invoking fn; once the
// window has elapsed the breaker moves to half-open and lets one probe
// through. A successful probe closes the circuit and resets the failure
// count.
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.preflight(); err != nil {
		return err
	}

	err := fn()

	cb.record(err)
	return err
}

// preflight checks whether the call may proceed, transitioning
// open -> half-open when the recovery timeout has elapsed.
func (cb *CircuitBreaker) preflight() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitOpen {
		return nil
	}

	if cb.now().Sub(cb.openedAt) < cb.recoveryTimeout {
		return ErrCircuitOpen
	}

	cb.state = CircuitHalfOpen
	return nil
}

// record updates breaker state after a call.
func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.state = CircuitClosed
		cb.failureCount = 0
		return
	}

	cb.failureCount++
	cb.openedAt = cb.now()
	if cb.failureCount >= cb.failureThreshold {
		cb.state = CircuitOpen
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// FailureCount returns the current consecutive failure count.
func (cb *CircuitBreaker) FailureCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount
}
