package graph

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError rejects a build whose holdings loop back on themselves. Nothing
// gets valued when this is returned; the graph in hand is discarded.
type CycleError struct {
	Cycles [][]string // ids grouped by strongly connected component, each sorted
}

func (e *CycleError) Error() string {
	groups := []string{}
	for _, c := range e.Cycles {
		groups = append(groups, strings.Join(c, ", "))
	}
	return fmt.Sprintf("holdings contain a cycle involving: %s", strings.Join(groups, "; "))
}

// Members flattens the grouped ids into one sorted list.
func (e *CycleError) Members() []string {
	out := []string{}
	for _, c := range e.Cycles {
		out = append(out, c...)
	}
	sort.Strings(out)
	return out
}

// findCycles extracts exactly which nodes participate in cycles: Tarjan's
// strongly connected components, keeping components larger than one node plus
// any node holding itself. Kahn's pass already told us a cycle exists
// somewhere; this pins down the membership for the report, without dragging
// in nodes that merely sit underneath a cycle.
func findCycles(g *Graph) [][]string {
	const unvisited = -1

	n := g.Len()
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for h := 0; h < n; h++ {
		index[h] = unvisited
	}

	next := 0
	stack := []int{}
	components := [][]string{}

	var strongConnect func(h int)
	strongConnect = func(h int) {
		index[h] = next
		lowlink[h] = next
		next++
		stack = append(stack, h)
		onStack[h] = true

		for _, hd := range g.nodes[h].holdings {
			c := hd.Child
			if index[c] == unvisited {
				strongConnect(c)
				if lowlink[c] < lowlink[h] {
					lowlink[h] = lowlink[c]
				}
			} else if onStack[c] {
				if index[c] < lowlink[h] {
					lowlink[h] = index[c]
				}
			}
		}

		if lowlink[h] == index[h] {
			component := []int{}
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				component = append(component, top)
				if top == h {
					break
				}
			}
			if len(component) > 1 || holdsSelf(g, h) {
				ids := []string{}
				for _, m := range component {
					ids = append(ids, g.nodes[m].id)
				}
				sort.Strings(ids)
				components = append(components, ids)
			}
		}
	}

	for h := 0; h < n; h++ {
		if index[h] == unvisited {
			strongConnect(h)
		}
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

func holdsSelf(g *Graph, h int) bool {
	for _, hd := range g.nodes[h].holdings {
		if hd.Child == h {
			return true
		}
	}
	return false
}
