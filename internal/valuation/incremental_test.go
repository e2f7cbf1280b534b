package valuation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
)

func receiptIDs(receipt []domain.NodeValue) []string {
	ids := []string{}
	for _, nv := range receipt {
		ids = append(ids, nv.ID)
	}
	return ids
}

func Test_IncrementalStrategy(t *testing.T) {
	t.Run("init pass caches the whole graph", func(t *testing.T) {
		s, err := NewIncrementalStrategy(newExampleGraph(t))
		require.NoError(t, err)

		requireValue(t, s, "A", 100)
		requireValue(t, s, "B", 50)
		requireValue(t, s, "P", 250)
		requireValue(t, s, "Q", 350)
	})

	t.Run("update propagates children before parents", func(t *testing.T) {
		s, err := NewIncrementalStrategy(newExampleGraph(t))
		require.NoError(t, err)

		receipt, err := s.ApplyPriceUpdate(domain.NewPriceUpdate("A", 120, "test"))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]string{"A", "P", "Q"}, receiptIDs(receipt)))

		requireValue(t, s, "P", 290)
		requireValue(t, s, "Q", 410)
		requireValue(t, s, "B", 50)
	})

	t.Run("re-applying the same price is a no-op", func(t *testing.T) {
		s, err := NewIncrementalStrategy(newExampleGraph(t))
		require.NoError(t, err)

		receipt, err := s.ApplyPriceUpdate(domain.NewPriceUpdate("A", 100, "test"))
		require.NoError(t, err)
		require.Len(t, receipt, 0)

		requireValue(t, s, "Q", 350)
	})

	t.Run("propagation stops where the value stops changing", func(t *testing.T) {
		g, err := graph.Build(graph.BuildInput{
			Leaves: []domain.LeafPrice{
				{ID: "A", Price: 10},
				{ID: "B", Price: 5},
			},
			Edges: []domain.Edge{
				{ParentID: "P", ChildID: "A", Weight: 0},
				{ParentID: "P", ChildID: "B", Weight: 1},
				{ParentID: "TOP", ChildID: "P", Weight: 4},
			},
		})
		require.NoError(t, err)
		s, err := NewIncrementalStrategy(g)
		require.NoError(t, err)

		// A only reaches P through a zero weight lot, so P holds at 5 and
		// TOP is never touched
		receipt, err := s.ApplyPriceUpdate(domain.NewPriceUpdate("A", 999, "test"))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]string{"A"}, receiptIDs(receipt)))

		requireValue(t, s, "P", 5)
		requireValue(t, s, "TOP", 20)
	})

	t.Run("diamond apex recomputes exactly once", func(t *testing.T) {
		g, err := graph.Build(graph.BuildInput{
			Leaves: []domain.LeafPrice{{ID: "L", Price: 10}},
			Edges: []domain.Edge{
				{ParentID: "P1", ChildID: "L", Weight: 1},
				{ParentID: "P2", ChildID: "L", Weight: 2},
				{ParentID: "APEX", ChildID: "P1", Weight: 1},
				{ParentID: "APEX", ChildID: "P2", Weight: 1},
			},
		})
		require.NoError(t, err)
		s, err := NewIncrementalStrategy(g)
		require.NoError(t, err)

		receipt, err := s.ApplyPriceUpdate(domain.NewPriceUpdate("L", 20, "test"))
		require.NoError(t, err)

		// both paths converge but APEX shows up once, after P1 and P2
		require.Equal(t, "", cmp.Diff([]string{"L", "P1", "P2", "APEX"}, receiptIDs(receipt)))
		requireValue(t, s, "APEX", 60)
	})

	t.Run("same lot twice doubles up", func(t *testing.T) {
		g, err := graph.Build(graph.BuildInput{
			Leaves: []domain.LeafPrice{{ID: "A", Price: 7}},
			Edges: []domain.Edge{
				{ParentID: "P", ChildID: "A", Weight: 2},
				{ParentID: "P", ChildID: "A", Weight: 3},
			},
		})
		require.NoError(t, err)
		s, err := NewIncrementalStrategy(g)
		require.NoError(t, err)
		requireValue(t, s, "P", 35)

		receipt, err := s.ApplyPriceUpdate(domain.NewPriceUpdate("A", 10, "test"))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]string{"A", "P"}, receiptIDs(receipt)))
		requireValue(t, s, "P", 50)
	})

	t.Run("refuses a cyclic graph", func(t *testing.T) {
		g, err := graph.Build(graph.BuildInput{
			Edges: []domain.Edge{
				{ParentID: "X", ChildID: "Y", Weight: 1},
				{ParentID: "Y", ChildID: "X", Weight: 1},
			},
			CyclePolicy: graph.CyclePolicyAllow,
		})
		require.NoError(t, err)

		_, err = NewIncrementalStrategy(g)
		require.ErrorContains(t, err, "failed to seed value cache")
	})

	t.Run("error surface matches the full strategy", func(t *testing.T) {
		s, err := NewIncrementalStrategy(newExampleGraph(t))
		require.NoError(t, err)

		_, err = s.NodeValue("NOPE")
		require.ErrorContains(t, err, "unknown node NOPE")

		_, err = s.ApplyPriceUpdate(domain.NewPriceUpdate("Q", 5, "test"))
		require.ErrorContains(t, err, "not a leaf")
	})
}

// layered graph with plenty of shared children, then a few hundred random
// updates: the cache must land exactly where a from-scratch recompute lands.
func Test_IncrementalStrategy_matchesFullStrategy(t *testing.T) {
	leaves := []domain.LeafPrice{}
	for i := 0; i < 10; i++ {
		leaves = append(leaves, domain.LeafPrice{ID: fmt.Sprintf("L%d", i), Price: float64(10 + i)})
	}
	edges := []domain.Edge{}
	// mid layer: M0..M4 each hold three leaves, overlapping
	for i := 0; i < 5; i++ {
		for j := 0; j < 3; j++ {
			edges = append(edges, domain.Edge{
				ParentID: fmt.Sprintf("M%d", i),
				ChildID:  fmt.Sprintf("L%d", (i*2+j)%10),
				Weight:   float64(j + 1),
			})
		}
	}
	// top layer mixes mids, leaves and a short
	edges = append(edges,
		domain.Edge{ParentID: "T0", ChildID: "M0", Weight: 2},
		domain.Edge{ParentID: "T0", ChildID: "M1", Weight: 1},
		domain.Edge{ParentID: "T0", ChildID: "L9", Weight: -1},
		domain.Edge{ParentID: "T1", ChildID: "M2", Weight: 3},
		domain.Edge{ParentID: "T1", ChildID: "M3", Weight: 1},
		domain.Edge{ParentID: "T1", ChildID: "M4", Weight: 1},
		domain.Edge{ParentID: "ROOT", ChildID: "T0", Weight: 1},
		domain.Edge{ParentID: "ROOT", ChildID: "T1", Weight: 2},
		domain.Edge{ParentID: "ROOT", ChildID: "L0", Weight: 5},
	)

	build := func(t *testing.T) *graph.Graph {
		g, err := graph.Build(graph.BuildInput{Leaves: leaves, Edges: edges})
		require.NoError(t, err)
		return g
	}

	// two graphs so the strategies cannot share leaf prices by accident
	incGraph := build(t)
	fullGraph := build(t)

	inc, err := NewIncrementalStrategy(incGraph)
	require.NoError(t, err)
	full := NewFullStrategy(fullGraph)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		leaf := fmt.Sprintf("L%d", rng.Intn(10))
		price := float64(rng.Intn(2000)) / 4
		update := domain.NewPriceUpdate(leaf, price, "test")

		_, err := inc.ApplyPriceUpdate(update)
		require.NoError(t, err)
		_, err = full.ApplyPriceUpdate(update)
		require.NoError(t, err)
	}

	for _, id := range []string{
		"L0", "L1", "L2", "L3", "L4", "L5", "L6", "L7", "L8", "L9",
		"M0", "M1", "M2", "M3", "M4", "T0", "T1", "ROOT",
	} {
		want, err := full.NodeValue(id)
		require.NoError(t, err)
		got, err := inc.NodeValue(id)
		require.NoError(t, err)
		require.True(t, want.Equal(got), "%s: full says %s, incremental says %s", id, want, got)
	}
}
