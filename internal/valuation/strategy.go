// Package valuation computes node values over a built graph. Two
// interchangeable strategies cover the two cost profiles: FullStrategy
// recomputes from scratch and never goes stale, IncrementalStrategy caches
// everything once and then touches only what a price update can reach. Both
// agree on every value after any update sequence; the reconciler leans on
// that.
package valuation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
)

// Strategy computes node values and absorbs leaf price updates. The receipt
// returned by ApplyPriceUpdate lists recomputed nodes in the order they were
// touched; it is what gets printed, streamed and persisted.
//
// Implementations are not safe for concurrent use on their own; wrap them in
// a Coordinator when calls can overlap.
type Strategy interface {
	NodeValue(id string) (decimal.Decimal, error)
	ApplyPriceUpdate(update domain.PriceUpdate) ([]domain.NodeValue, error)
}

// applyLeafPrice validates an update and moves the leaf's price. Returns the
// handle plus the price before and after, so callers can short circuit when
// nothing actually changed. Nothing is mutated on error.
func applyLeafPrice(g *graph.Graph, update domain.PriceUpdate) (int, decimal.Decimal, decimal.Decimal, error) {
	h, ok := g.Handle(update.LeafID)
	if !ok {
		return 0, decimal.Zero, decimal.Zero, fmt.Errorf("unknown node %s", update.LeafID)
	}
	if math.IsNaN(update.Price) || math.IsInf(update.Price, 0) {
		return 0, decimal.Zero, decimal.Zero, fmt.Errorf("invalid price %f for %s", update.Price, update.LeafID)
	}
	old := g.Price(h)
	next := decimal.NewFromFloat(update.Price)
	if err := g.SetPrice(h, next); err != nil {
		return 0, decimal.Zero, decimal.Zero, err
	}
	return h, old, next, nil
}
