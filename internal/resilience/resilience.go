// Package resilience guards external snapshot sources with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// NewCircuitBreaker creates a circuit breaker tuned for database reads
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // half-open: allow 3 requests
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// a missing snapshot row is a data problem, not an outage
			return err == nil || errors.Is(err, domain.ErrSnapshotUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
}

// BreakerSource wraps a snapshot source so repeated failures fail fast
type BreakerSource struct {
	next    domain.SnapshotSource
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	name    string
}

// NewBreakerSource wraps next with a circuit breaker named name
func NewBreakerSource(name string, next domain.SnapshotSource, m *metrics.Metrics) *BreakerSource {
	return &BreakerSource{
		next:    next,
		breaker: NewCircuitBreaker(name),
		metrics: m,
		name:    name,
	}
}

var _ domain.SnapshotSource = (*BreakerSource)(nil)

// LoadSnapshot implements domain.SnapshotSource
func (b *BreakerSource) LoadSnapshot(ctx context.Context) (*domain.MetricsSnapshot, error) {
	return execute(b, func() (*domain.MetricsSnapshot, error) { return b.next.LoadSnapshot(ctx) })
}

// LoadInvoices implements domain.SnapshotSource
func (b *BreakerSource) LoadInvoices(ctx context.Context) ([]domain.InvoiceRecord, error) {
	return execute(b, func() ([]domain.InvoiceRecord, error) { return b.next.LoadInvoices(ctx) })
}

// LoadHourlySales implements domain.SnapshotSource
func (b *BreakerSource) LoadHourlySales(ctx context.Context) ([]domain.HourlySales, error) {
	return execute(b, func() ([]domain.HourlySales, error) { return b.next.LoadHourlySales(ctx) })
}

// State returns the breaker's current state
func (b *BreakerSource) State() gobreaker.State {
	return b.breaker.State()
}

func execute[T any](b *BreakerSource, fn func() (T, error)) (T, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		b.metrics.SourceError(b.name)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, errors.Join(domain.ErrSnapshotUnavailable, err)
		}
		return zero, err
	}
	return result.(T), nil
}
