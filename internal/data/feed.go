package data

import (
	"context"
	"fmt"
	"sort"
	"time"

	"assetgraph/internal/domain"
	"assetgraph/internal/logger"
)

// UpdateSink receives each price update a feed produces. The feed stops on
// the first sink error so a broken consumer surfaces immediately instead of
// silently dropping ticks.
type UpdateSink func(ctx context.Context, update domain.PriceUpdate) error

// FeedHandler polls a price source and pushes an update for every symbol
// whose price moved since the previous poll.
type FeedHandler struct {
	Source  PriceSource
	Symbols []string
	Sink    UpdateSink

	// MarketOpen, when set, gates polling on the exchange clock.
	MarketOpen func() (bool, error)

	last map[string]float64
}

// PollOnce fetches the latest prices once and returns how many updates it
// pushed.
func (h *FeedHandler) PollOnce(ctx context.Context) (int, error) {
	if h.MarketOpen != nil {
		open, err := h.MarketOpen()
		if err != nil {
			return 0, fmt.Errorf("failed to check market clock: %w", err)
		}
		if !open {
			return 0, nil
		}
	}

	prices, err := h.Source.LatestPrices(ctx, h.Symbols)
	if err != nil {
		return 0, fmt.Errorf("failed to poll %s: %w", h.Source.Name(), err)
	}

	// stable order so repeated runs produce the same update sequence
	symbols := make([]string, 0, len(prices))
	for symbol := range prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	if h.last == nil {
		h.last = map[string]float64{}
	}

	pushed := 0
	for _, symbol := range symbols {
		price := prices[symbol]
		if last, ok := h.last[symbol]; ok && last == price {
			continue
		}
		update := domain.NewPriceUpdate(symbol, price, h.Source.Name())
		if err := h.Sink(ctx, update); err != nil {
			return pushed, fmt.Errorf("failed to push %s update for %s: %w", h.Source.Name(), symbol, err)
		}
		h.last[symbol] = price
		pushed++
	}

	return pushed, nil
}

// Run polls until the context is cancelled. Poll errors are logged and the
// loop keeps going; only sink errors inside a poll stop that poll early.
func (h *FeedHandler) Run(ctx context.Context, interval time.Duration) error {
	log := logger.FromContext(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("feed %s polling %d symbol(s) every %s", h.Source.Name(), len(h.Symbols), interval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pushed, err := h.PollOnce(ctx)
			if err != nil {
				log.Warnf("feed poll failed: %v", err)
				continue
			}
			if pushed > 0 {
				log.Infof("pushed %d update(s) from %s", pushed, h.Source.Name())
			}
		}
	}
}
