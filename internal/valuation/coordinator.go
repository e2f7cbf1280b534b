package valuation

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
)

// Coordinator makes a strategy safe to share between goroutines. Every node
// carries its own RWMutex; an update write-locks the updated leaf plus every
// ancestor, in id order, for the whole propagation. Updates touching disjoint
// subgraphs run in parallel, overlapping ones queue up behind each other, and
// the single global lock order keeps the whole thing deadlock free.
//
// A read takes only the target node's read lock: any in-flight update that
// could change that node's value is holding its write lock, so a reader never
// observes a half-propagated ancestor chain.
//
// Coordinator implements Strategy, so it drops in wherever a bare strategy
// would go.
type Coordinator struct {
	g        *graph.Graph
	strategy Strategy
	locks    []sync.RWMutex
}

func NewCoordinator(g *graph.Graph, strategy Strategy) *Coordinator {
	return &Coordinator{
		g:        g,
		strategy: strategy,
		locks:    make([]sync.RWMutex, g.Len()),
	}
}

func (c *Coordinator) NodeValue(id string) (decimal.Decimal, error) {
	h, ok := c.g.Handle(id)
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown node %s", id)
	}
	c.locks[h].RLock()
	defer c.locks[h].RUnlock()
	return c.strategy.NodeValue(id)
}

func (c *Coordinator) ApplyPriceUpdate(update domain.PriceUpdate) ([]domain.NodeValue, error) {
	h, ok := c.g.Handle(update.LeafID)
	if !ok {
		return nil, fmt.Errorf("unknown node %s", update.LeafID)
	}

	affected := append([]int{h}, c.g.Ancestors(h)...)
	sort.Slice(affected, func(i, j int) bool {
		return c.g.ID(affected[i]) < c.g.ID(affected[j])
	})

	for _, n := range affected {
		c.locks[n].Lock()
	}
	defer func() {
		for i := len(affected) - 1; i >= 0; i-- {
			c.locks[affected[i]].Unlock()
		}
	}()

	return c.strategy.ApplyPriceUpdate(update)
}
