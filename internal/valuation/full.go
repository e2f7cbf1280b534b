package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
)

// FullStrategy revalues from scratch on every call. No bookkeeping survives
// between calls, so there is nothing to go stale; shared children are
// memoized within a single call so each node is computed at most once per
// call.
//
// On a graph built with CyclePolicyAllow a true cycle makes the recursion
// here run without bound. Build rejects cycles by default; keep it that way
// anywhere this strategy values nodes.
type FullStrategy struct {
	g *graph.Graph
}

func NewFullStrategy(g *graph.Graph) *FullStrategy {
	return &FullStrategy{g: g}
}

func (s *FullStrategy) NodeValue(id string) (decimal.Decimal, error) {
	h, ok := s.g.Handle(id)
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown node %s", id)
	}
	memo := map[int]decimal.Decimal{}
	return s.value(h, memo), nil
}

// ApplyPriceUpdate moves the leaf and reports it plus every ancestor with a
// freshly computed value. Without a cache there is nothing to diff against,
// so no change detection happens here: ancestors are reported even when a
// zero-weight holding keeps their value the same.
func (s *FullStrategy) ApplyPriceUpdate(update domain.PriceUpdate) ([]domain.NodeValue, error) {
	h, _, next, err := applyLeafPrice(s.g, update)
	if err != nil {
		return nil, err
	}

	out := []domain.NodeValue{{ID: update.LeafID, Value: next}}
	memo := map[int]decimal.Decimal{}
	for _, a := range s.g.Ancestors(h) {
		out = append(out, domain.NodeValue{ID: s.g.ID(a), Value: s.value(a, memo)})
	}
	return out, nil
}

func (s *FullStrategy) value(h int, memo map[int]decimal.Decimal) decimal.Decimal {
	if v, ok := memo[h]; ok {
		return v
	}
	if s.g.Kind(h) == domain.NodeKindLeaf {
		p := s.g.Price(h)
		memo[h] = p
		return p
	}
	total := decimal.Zero
	for _, hd := range s.g.Holdings(h) {
		total = total.Add(s.value(hd.Child, memo).Mul(hd.Weight))
	}
	memo[h] = total
	return total
}
