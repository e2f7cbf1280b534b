// Package graph builds and walks the portfolio structure: a DAG of priced
// leaves and weighted composites. The topology is immutable once built; leaf
// prices are the only thing that mutates afterwards, and only through
// SetPrice.
package graph

import (
	"fmt"

	"github.com/shopspring/decimal"

	"assetgraph/internal/domain"
)

// Holding is one edge of the arena: the owning composite holds Weight units
// of the node at handle Child.
type Holding struct {
	Child  int
	Weight decimal.Decimal
}

type node struct {
	id       string
	kind     domain.NodeKind
	price    decimal.Decimal // leaves only
	holdings []Holding       // composites only, in input order
	parents  []int           // handles of every composite holding this node
	level    int             // distance from the deepest root, -1 if on/under a cycle
}

// Graph owns every node in one dense slice; a handle is an index into it.
// Edges are handle based in both directions, so id lookups happen once at the
// boundary and never inside a traversal or a propagation.
type Graph struct {
	nodes  []node
	index  map[string]int
	cyclic bool
	cycles [][]string
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Handle resolves an id to its arena index.
func (g *Graph) Handle(id string) (int, bool) {
	h, ok := g.index[id]
	return h, ok
}

func (g *Graph) ID(h int) string {
	return g.nodes[h].id
}

func (g *Graph) Kind(h int) domain.NodeKind {
	return g.nodes[h].kind
}

// Price returns a leaf's current price. Composites report zero; their values
// come from a valuation strategy, never from here.
func (g *Graph) Price(h int) decimal.Decimal {
	return g.nodes[h].price
}

// SetPrice replaces a leaf's current price. Callers are responsible for
// serializing concurrent updates; see the valuation coordinator.
func (g *Graph) SetPrice(h int, price decimal.Decimal) error {
	if g.nodes[h].kind != domain.NodeKindLeaf {
		return fmt.Errorf("%s is not a leaf and cannot be priced directly", g.nodes[h].id)
	}
	g.nodes[h].price = price
	return nil
}

// Holdings returns a composite's position lines. The slice is the graph's
// own storage; callers must not mutate it.
func (g *Graph) Holdings(h int) []Holding {
	return g.nodes[h].holdings
}

// Parents returns the handles of every composite holding h. A composite
// holding h twice appears twice. The slice is the graph's own storage;
// callers must not mutate it.
func (g *Graph) Parents(h int) []int {
	return g.nodes[h].parents
}

// Level is the node's depth from the roots: roots sit at 0, every other node
// one below its deepest parent. Returns -1 for nodes on or underneath a cycle
// in a graph built with CyclePolicyAllow.
func (g *Graph) Level(h int) int {
	return g.nodes[h].level
}

// Cyclic reports whether the holdings loop somewhere. Only possible when the
// graph was built with CyclePolicyAllow; the default policy refuses to build
// cyclic graphs at all.
func (g *Graph) Cyclic() bool {
	return g.cyclic
}

// Cycles returns the ids participating in cycles, grouped by strongly
// connected component, each group sorted. Empty when the graph is acyclic.
func (g *Graph) Cycles() [][]string {
	return g.cycles
}

// LeafIDs returns every leaf id in arena order. This is the symbol set a
// price feed needs to poll.
func (g *Graph) LeafIDs() []string {
	out := []string{}
	for _, n := range g.nodes {
		if n.kind == domain.NodeKindLeaf {
			out = append(out, n.id)
		}
	}
	return out
}

// Ancestors walks the parent references breadth first and returns every node
// above h, deduplicated, in visit order. This is the set a price update can
// possibly touch.
func (g *Graph) Ancestors(h int) []int {
	seen := make([]bool, len(g.nodes))
	queue := append([]int{}, g.nodes[h].parents...)
	out := []int{}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
		queue = append(queue, g.nodes[n].parents...)
	}
	return out
}
