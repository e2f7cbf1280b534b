package graph

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"assetgraph/internal/domain"
)

// CyclePolicy controls what Build does when the holdings loop.
type CyclePolicy string

const (
	// CyclePolicyReject fails the build with a CycleError. The default.
	CyclePolicyReject CyclePolicy = "REJECT"
	// CyclePolicyAllow builds the graph anyway and flags it. Traversals and
	// the incremental strategy refuse to run on a flagged graph; the full
	// strategy's recursion does not terminate on a true cycle, so only pick
	// this policy to inspect a bad structure, not to value it.
	CyclePolicyAllow CyclePolicy = "ALLOW"
)

// BuildInput declares a graph: which ids are directly priced and what every
// composite holds. Any id appearing as a parent becomes a composite; an id
// with an initial price is a leaf; one id cannot be both.
type BuildInput struct {
	Leaves      []domain.LeafPrice
	Edges       []domain.Edge
	CyclePolicy CyclePolicy // zero value means CyclePolicyReject
}

// Build validates the input and assembles the arena. Structural problems
// (unknown ids, duplicate leaves, an id priced and also used as a parent,
// non-finite numbers, empty ids) are rejected here so nothing downstream has
// to re-check them.
func Build(in BuildInput) (*Graph, error) {
	g := &Graph{
		nodes: []node{},
		index: map[string]int{},
	}

	for _, leaf := range in.Leaves {
		if leaf.ID == "" {
			return nil, fmt.Errorf("leaf with empty id")
		}
		if _, ok := g.index[leaf.ID]; ok {
			return nil, fmt.Errorf("duplicate leaf %s", leaf.ID)
		}
		if math.IsNaN(leaf.Price) || math.IsInf(leaf.Price, 0) {
			return nil, fmt.Errorf("invalid initial price %f for %s", leaf.Price, leaf.ID)
		}
		g.index[leaf.ID] = len(g.nodes)
		g.nodes = append(g.nodes, node{
			id:    leaf.ID,
			kind:  domain.NodeKindLeaf,
			price: decimal.NewFromFloat(leaf.Price),
			level: -1,
		})
	}

	// first pass registers every parent as a composite, in first-seen order,
	// so that a child referencing a composite defined later in the input
	// still resolves
	for _, e := range in.Edges {
		if e.ParentID == "" || e.ChildID == "" {
			return nil, fmt.Errorf("edge with empty id (%q -> %q)", e.ParentID, e.ChildID)
		}
		h, ok := g.index[e.ParentID]
		if ok {
			if g.nodes[h].kind == domain.NodeKindLeaf {
				return nil, fmt.Errorf("%s cannot be both a priced leaf and a parent", e.ParentID)
			}
			continue
		}
		g.index[e.ParentID] = len(g.nodes)
		g.nodes = append(g.nodes, node{
			id:    e.ParentID,
			kind:  domain.NodeKindComposite,
			level: -1,
		})
	}

	// second pass links holdings both ways. duplicate (parent, child) pairs
	// are kept as separate lots, matching how definition files repeat lines
	for _, e := range in.Edges {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("invalid weight %f on %s -> %s", e.Weight, e.ParentID, e.ChildID)
		}
		parent := g.index[e.ParentID]
		child, ok := g.index[e.ChildID]
		if !ok {
			return nil, fmt.Errorf("%s holds unknown id %s", e.ParentID, e.ChildID)
		}
		g.nodes[parent].holdings = append(g.nodes[parent].holdings, Holding{
			Child:  child,
			Weight: decimal.NewFromFloat(e.Weight),
		})
		g.nodes[child].parents = append(g.nodes[child].parents, parent)
	}

	if !g.assignLevels() {
		g.cyclic = true
		g.cycles = findCycles(g)
		if in.CyclePolicy != CyclePolicyAllow {
			return nil, &CycleError{Cycles: g.cycles}
		}
	}

	return g, nil
}

// assignLevels runs Kahn's algorithm from the roots downward: a node is
// ready once every one of its parent edges has resolved, and lands one level
// below its deepest parent. Reports false when some node never became ready,
// which means the holdings loop.
func (g *Graph) assignLevels() bool {
	remaining := make([]int, len(g.nodes))
	for h := range g.nodes {
		remaining[h] = len(g.nodes[h].parents)
	}

	queue := []int{}
	for h := range g.nodes {
		if remaining[h] == 0 {
			g.nodes[h].level = 0
			queue = append(queue, h)
		}
	}

	assigned := len(queue)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, hd := range g.nodes[p].holdings {
			if lvl := g.nodes[p].level + 1; lvl > g.nodes[hd.Child].level {
				g.nodes[hd.Child].level = lvl
			}
			remaining[hd.Child]--
			if remaining[hd.Child] == 0 {
				queue = append(queue, hd.Child)
				assigned++
			}
		}
	}

	if assigned < len(g.nodes) {
		// leave cycle-tainted nodes unassigned
		for h := range g.nodes {
			if remaining[h] > 0 {
				g.nodes[h].level = -1
			}
		}
		return false
	}
	return true
}
