package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jstittsworth/fpl-proxy/internal/providers"
)

type CircuitBreakerService struct {
	breakers map[string]*gobreaker.CircuitBreaker
	logger   *logrus.Logger
}

// NewCircuitBreakerService trips a breaker after threshold consecutive failures
// and probes the upstream again once timeout has passed.
func NewCircuitBreakerService(threshold int, timeout time.Duration, logger *logrus.Logger) *CircuitBreakerService {
	if threshold <= 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        providers.BreakerName,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, providers.ErrCallerGone)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	breakers := map[string]*gobreaker.CircuitBreaker{
		providers.BreakerName: gobreaker.NewCircuitBreaker(settings),
	}

	return &CircuitBreakerService{
		breakers: breakers,
		logger:   logger,
	}
}

// Execute wraps a function call with circuit breaker protection
func (cb *CircuitBreakerService) Execute(service string, fn func() (interface{}, error)) (interface{}, error) {
	breaker, exists := cb.breakers[service]
	if !exists {
		cb.logger.WithFields(logrus.Fields{
			"component": "circuit_breaker",
			"service":   service,
		}).Warn("No circuit breaker found for service, executing without protection")
		return fn()
	}

	return breaker.Execute(fn)
}

// GetState returns the current state of a circuit breaker
func (cb *CircuitBreakerService) GetState(service string) gobreaker.State {
	if breaker, exists := cb.breakers[service]; exists {
		return breaker.State()
	}
	return gobreaker.StateClosed
}

// Status summarises every breaker for the health endpoint.
func (cb *CircuitBreakerService) Status() map[string]interface{} {
	out := make(map[string]interface{}, len(cb.breakers))
	for name, breaker := range cb.breakers {
		counts := breaker.Counts()
		out[name] = map[string]interface{}{
			"state":                breaker.State().String(),
			"consecutive_failures": counts.ConsecutiveFailures,
			"requests":             counts.Requests,
		}
	}
	return out
}
