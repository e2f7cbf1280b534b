package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
)

// IncrementalStrategy caches every node's value once up front, then keeps the
// cache consistent by propagating each price update through the recorded
// parent references. Dirty nodes are processed deepest level first, so every
// changed child lands before anything holding it reads it, and each node is
// recomputed at most once per update. A recompute that lands on the same
// value stops the walk along that path.
type IncrementalStrategy struct {
	g      *graph.Graph
	values []decimal.Decimal // by handle
}

// NewIncrementalStrategy runs the init pass: one bottom-up traversal filling
// the cache. Fails on a cyclic graph.
func NewIncrementalStrategy(g *graph.Graph) (*IncrementalStrategy, error) {
	tr, err := graph.NewTraversal(g, graph.BottomUp)
	if err != nil {
		return nil, fmt.Errorf("failed to seed value cache: %w", err)
	}

	s := &IncrementalStrategy{
		g:      g,
		values: make([]decimal.Decimal, g.Len()),
	}
	for h, ok := tr.Next(); ok; h, ok = tr.Next() {
		s.values[h] = s.compute(h)
	}
	return s, nil
}

func (s *IncrementalStrategy) NodeValue(id string) (decimal.Decimal, error) {
	h, ok := s.g.Handle(id)
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown node %s", id)
	}
	return s.values[h], nil
}

// ApplyPriceUpdate moves the leaf and walks upward through whatever the
// change actually reaches. The receipt lists changed nodes in processing
// order; re-applying the current price returns an empty receipt and touches
// nothing.
func (s *IncrementalStrategy) ApplyPriceUpdate(update domain.PriceUpdate) ([]domain.NodeValue, error) {
	h, old, next, err := applyLeafPrice(s.g, update)
	if err != nil {
		return nil, err
	}
	if next.Equal(old) {
		return nil, nil
	}
	s.values[h] = next
	out := []domain.NodeValue{{ID: update.LeafID, Value: next}}

	// parents always sit at strictly smaller levels than their children, so
	// one descending scan visits every dirty node after all of its changed
	// children and before any of its parents
	buckets := make([][]int, s.g.Level(h))
	queued := make([]bool, s.g.Len())
	enqueue := func(parents []int) {
		for _, p := range parents {
			if !queued[p] {
				queued[p] = true
				lvl := s.g.Level(p)
				buckets[lvl] = append(buckets[lvl], p)
			}
		}
	}

	enqueue(s.g.Parents(h))
	for lvl := len(buckets) - 1; lvl >= 0; lvl-- {
		for _, n := range buckets[lvl] {
			v := s.compute(n)
			if v.Equal(s.values[n]) {
				continue
			}
			s.values[n] = v
			out = append(out, domain.NodeValue{ID: s.g.ID(n), Value: v})
			enqueue(s.g.Parents(n))
		}
	}
	return out, nil
}

// compute rebuilds one node's value from the cached values of its direct
// children.
func (s *IncrementalStrategy) compute(h int) decimal.Decimal {
	if s.g.Kind(h) == domain.NodeKindLeaf {
		return s.g.Price(h)
	}
	total := decimal.Zero
	for _, hd := range s.g.Holdings(h) {
		total = total.Add(s.values[hd.Child].Mul(hd.Weight))
	}
	return total
}
