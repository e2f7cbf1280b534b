package data

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"assetgraph/internal/repository"

	"github.com/piquette/finance-go/quote"
)

// PriceSource produces the latest observed price per symbol. Implementations
// wrap market data vendors, plus a simulator for local runs and demos.
type PriceSource interface {
	Name() string
	LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}

type AlpacaSource struct {
	Repo repository.AlpacaRepository
}

func (s AlpacaSource) Name() string {
	return "alpaca"
}

func (s AlpacaSource) LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	prices, err := s.Repo.GetLatestPrices(ctx, symbols)
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for symbol, price := range prices {
		out[symbol] = price.InexactFloat64()
	}
	return out, nil
}

type YahooSource struct{}

func (YahooSource) Name() string {
	return "yahoo"
}

func (YahooSource) LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, symbol := range symbols {
		q, err := quote.Get(symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
		}
		if q == nil {
			return nil, fmt.Errorf("failed to get quote for %s: empty response", symbol)
		}
		out[symbol] = q.RegularMarketPrice
	}
	return out, nil
}

// SimSource walks each symbol's price a fraction of a percent per poll.
// Deterministic for a given seed, so tests and demos replay exactly.
type SimSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last map[string]float64
}

func NewSimSource(seed int64, initial map[string]float64) *SimSource {
	last := map[string]float64{}
	for symbol, price := range initial {
		last[symbol] = price
	}
	return &SimSource{
		rng:  rand.New(rand.NewSource(seed)),
		last: last,
	}
}

func (s *SimSource) Name() string {
	return "sim"
}

func (s *SimSource) LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]float64{}
	for _, symbol := range symbols {
		last, ok := s.last[symbol]
		if !ok {
			last = 100
		}
		// up to 50bps either way per poll
		next := last * (1 + (s.rng.Float64()-0.5)/100)
		s.last[symbol] = next
		out[symbol] = next
	}
	return out, nil
}
