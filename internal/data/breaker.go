package data

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSource guards a vendor-backed source with a circuit breaker so a
// flapping upstream stops being polled for a while instead of failing every
// tick.
type BreakerSource struct {
	source  PriceSource
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerSource(source PriceSource, log *zap.SugaredLogger) *BreakerSource {
	st := gobreaker.Settings{
		Name:        source.Name(),
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("price source %s circuit %s -> %s", name, from.String(), to.String())
		},
	}

	return &BreakerSource{
		source:  source,
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

func (b *BreakerSource) Name() string {
	return b.source.Name()
}

func (b *BreakerSource) LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	res, err := b.breaker.Execute(func() (interface{}, error) {
		return b.source.LatestPrices(ctx, symbols)
	})
	if err != nil {
		return nil, err
	}
	return res.(map[string]float64), nil
}
