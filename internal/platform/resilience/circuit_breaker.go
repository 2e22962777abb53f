// Package resilience guards remote calls with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/platform/metrics"
)

// ErrCircuitOpen is returned without calling through while the breaker rejects requests
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker wraps gobreaker with logging and a state gauge
type CircuitBreaker struct {
	cb     *gobreaker.CircuitBreaker
	name   string
	logger *slog.Logger
}

// NewCircuitBreaker trips after cfg.FailureThreshold consecutive failures
func NewCircuitBreaker(name string, cfg config.BreakerConfig, logger *slog.Logger, m *metrics.Metrics) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
			m.SetCircuitBreakerState(name, int(to))
		},
	}

	m.SetCircuitBreakerState(name, int(gobreaker.StateClosed))

	return &CircuitBreaker{
		cb:     gobreaker.NewCircuitBreaker(settings),
		name:   name,
		logger: logger,
	}
}

// Execute runs fn through the breaker. Rejections wrap ErrCircuitOpen.
func (c *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("Circuit breaker rejected call", "name", c.name, "reason", err)
		return fmt.Errorf("%w: %s (%v)", ErrCircuitOpen, c.name, err)
	}

	return err
}

// State returns the current state of the circuit breaker
func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}

// Name returns the circuit breaker name
func (c *CircuitBreaker) Name() string {
	return c.name
}
