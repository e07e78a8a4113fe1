package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/motscan/motscan/internal/config"
	"github.com/motscan/motscan/internal/logger"
)

// Controller is the explicit resilience context owned by the orchestrator.
// It keeps one circuit breaker per source next to the shared health monitor,
// so there is no package-level state and runs can be tested in isolation.
type Controller struct {
	circuitCfg config.CircuitConfig
	retry      *RetryHandler
	health     *HealthMonitor
	degrade    *Degradation
	logger     logger.Interface

	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
}

// NewController creates a controller with empty per-source state.
func NewController(circuitCfg config.CircuitConfig, retryCfg config.RetryConfig, log logger.Interface) *Controller {
	health := NewHealthMonitor()
	return &Controller{
		circuitCfg: circuitCfg,
		retry:      NewRetryHandler(retryCfg.MaxRetries, retryCfg.BaseDelay, retryCfg.MaxDelay, log),
		health:     health,
		degrade:    NewDegradation(health),
		logger:     log.WithComponent("resilience"),
		breakers:   make(map[string]*CircuitBreaker),
	}
}

// breaker returns the circuit breaker for a source, creating it lazily.
func (c *Controller) breaker(source string) *CircuitBreaker {
	c.mu.RLock()
	cb, ok := c.breakers[source]
	c.mu.RUnlock()
	if ok {
		return cb
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cb, ok = c.breakers[source]; ok {
		return cb
	}
	cb = NewCircuitBreaker(c.circuitCfg.FailureThreshold, c.circuitCfg.RecoveryTimeout)
	c.breakers[source] = cb
	return cb
}

// Execute runs fn for a source behind the circuit breaker and retry handler,
// and records the attempt in the source's health record. A rejection by an
// open circuit is not counted as an attempt since nothing was tried.
func (c *Controller) Execute(ctx context.Context, source string, fn func(context.Context) error) error {
	start := time.Now()

	err := c.breaker(source).Call(func() error {
		return c.retry.ExecuteWithRetry(ctx, fn)
	})

	if errors.Is(err, ErrCircuitOpen) {
		c.logger.Warn("call rejected by open circuit", "source", source)
		return err
	}

	c.health.RecordAttempt(source, err == nil, time.Since(start))
	return err
}

// Health exposes the health monitor for reporting.
func (c *Controller) Health() *HealthMonitor {
	return c.health
}

// Degradation exposes the degradation view.
func (c *Controller) Degradation() *Degradation {
	return c.degrade
}

// CircuitState returns the current state of a source's breaker.
func (c *Controller) CircuitState(source string) CircuitState {
	return c.breaker(source).State()
}
