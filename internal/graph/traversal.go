package graph

import (
	"fmt"
)

// Direction selects which way a traversal walks the level assignment.
type Direction int

const (
	// TopDown yields every node strictly after all of its parents: roots
	// first, deepest holdings last. The order for wiring propagation state.
	TopDown Direction = iota
	// BottomUp yields every node strictly after all of its children: deepest
	// holdings first, roots last. The order for valuation.
	BottomUp
)

// Traversal is a restartable cursor over the graph in deterministic level
// order. A node's level is one below its deepest parent, so a child shared by
// parents at different depths still comes out on the correct side of every
// one of them. Within a level, arena order; the same graph always yields the
// same sequence.
//
// Only the visit order is materialized, per traversal; nothing is retained on
// the graph itself.
type Traversal struct {
	order []int
	pos   int
}

// NewTraversal fails on a graph flagged cyclic: no level order exists there.
func NewTraversal(g *Graph, dir Direction) (*Traversal, error) {
	if g.Cyclic() {
		return nil, fmt.Errorf("cannot traverse cyclic graph (cycles: %v)", g.Cycles())
	}

	maxLevel := -1
	for h := 0; h < g.Len(); h++ {
		if g.nodes[h].level > maxLevel {
			maxLevel = g.nodes[h].level
		}
	}

	buckets := make([][]int, maxLevel+1)
	for h := 0; h < g.Len(); h++ {
		lvl := g.nodes[h].level
		buckets[lvl] = append(buckets[lvl], h)
	}

	order := make([]int, 0, g.Len())
	if dir == TopDown {
		for lvl := 0; lvl <= maxLevel; lvl++ {
			order = append(order, buckets[lvl]...)
		}
	} else {
		for lvl := maxLevel; lvl >= 0; lvl-- {
			order = append(order, buckets[lvl]...)
		}
	}

	return &Traversal{order: order}, nil
}

// Next yields the next handle, or false once the sequence is exhausted.
func (t *Traversal) Next() (int, bool) {
	if t.pos >= len(t.order) {
		return 0, false
	}
	h := t.order[t.pos]
	t.pos++
	return h, true
}

// Reset rewinds the cursor to the start of the same sequence.
func (t *Traversal) Reset() {
	t.pos = 0
}
