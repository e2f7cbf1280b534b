package service

import (
	"context"
	"testing"

	mock_calculator "assetgraph/internal/calculator/mocks"
	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"assetgraph/internal/valuation"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// P = 2*A + 1*B, Q = 1*P + 1*A, plus a free leaf for synthetic tests
func newTestService(t *testing.T) ValuationService {
	t.Helper()

	g, err := graph.Build(graph.BuildInput{
		Leaves: []domain.LeafPrice{
			{ID: "A", Price: 100},
			{ID: "B", Price: 50},
			{ID: "SPREAD", Price: 0},
		},
		Edges: []domain.Edge{
			{ParentID: "P", ChildID: "A", Weight: 2},
			{ParentID: "P", ChildID: "B", Weight: 1},
			{ParentID: "Q", ChildID: "P", Weight: 1},
			{ParentID: "Q", ChildID: "A", Weight: 1},
		},
	})
	require.NoError(t, err)

	strategy, err := valuation.NewIncrementalStrategy(g)
	require.NoError(t, err)

	return NewValuationService(nil, g, valuation.NewCoordinator(g, strategy), "incremental", nil, nil, nil)
}

func receiptLines(receipt []domain.NodeValue) []string {
	out := []string{}
	for _, nv := range receipt {
		out = append(out, nv.ID+"="+nv.Value.String())
	}
	return out
}

func Test_ApplyUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes an update through every ancestor", func(t *testing.T) {
		svc := newTestService(t)

		receipt, err := svc.ApplyUpdate(ctx, domain.NewPriceUpdate("A", 120, "test"))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]string{"A=120", "P=290", "Q=410"}, receiptLines(receipt)))

		value, err := svc.NodeValue(ctx, "Q")
		require.NoError(t, err)
		require.True(t, value.Equal(decimal.NewFromInt(410)), "got %s", value)
	})

	t.Run("rejects updates for unknown nodes", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.ApplyUpdate(ctx, domain.NewPriceUpdate("NOPE", 1, "test"))
		require.ErrorContains(t, err, "unknown node NOPE")
	})

	t.Run("feeds the receipt back into synthetics", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := newTestService(t)
		synthetics := mock_calculator.NewMockSyntheticService(ctrl)
		svc.SetSynthetics(synthetics)

		// first pass reprices SPREAD off the receipt, second pass has
		// nothing left to do
		synthetics.EXPECT().
			Recalculate(gomock.Any(), gomock.Any()).
			Return([]domain.PriceUpdate{domain.NewPriceUpdate("SPREAD", 37, "synthetic")}, nil)
		synthetics.EXPECT().
			Recalculate(gomock.Any(), gomock.Any()).
			Return([]domain.PriceUpdate{}, nil)

		receipt, err := svc.ApplyUpdate(ctx, domain.NewPriceUpdate("A", 120, "test"))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(
			[]string{"A=120", "P=290", "Q=410", "SPREAD=37"},
			receiptLines(receipt),
		))
	})

	t.Run("a synthetic cannot reprice the leaf that triggered it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := newTestService(t)
		synthetics := mock_calculator.NewMockSyntheticService(ctrl)
		svc.SetSynthetics(synthetics)

		synthetics.EXPECT().
			Recalculate(gomock.Any(), gomock.Any()).
			Return([]domain.PriceUpdate{domain.NewPriceUpdate("A", 999, "synthetic")}, nil)

		receipt, err := svc.ApplyUpdate(ctx, domain.NewPriceUpdate("A", 120, "test"))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]string{"A=120", "P=290", "Q=410"}, receiptLines(receipt)))

		value, err := svc.NodeValue(ctx, "A")
		require.NoError(t, err)
		require.True(t, value.Equal(decimal.NewFromInt(120)), "got %s", value)
	})
}

func Test_Snapshot(t *testing.T) {
	svc := newTestService(t)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff(
		[]string{"A=100", "B=50", "P=250", "Q=350", "SPREAD=0"},
		receiptLines(snapshot),
	))
}

func Test_Breakdown(t *testing.T) {
	ctx := context.Background()

	t.Run("composite", func(t *testing.T) {
		svc := newTestService(t)

		breakdown, err := svc.Breakdown(ctx, "P")
		require.NoError(t, err)
		require.Equal(t, domain.NodeKindComposite, breakdown.Kind)
		require.True(t, breakdown.Value.Equal(decimal.NewFromInt(250)))
		require.Len(t, breakdown.Holdings, 2)

		require.Equal(t, "A", breakdown.Holdings[0].ChildID)
		require.True(t, breakdown.Holdings[0].Exposure.Equal(decimal.NewFromInt(200)))
		require.Equal(t, "B", breakdown.Holdings[1].ChildID)
		require.True(t, breakdown.Holdings[1].Exposure.Equal(decimal.NewFromInt(50)))
	})

	t.Run("leaf has no holdings", func(t *testing.T) {
		svc := newTestService(t)

		breakdown, err := svc.Breakdown(ctx, "B")
		require.NoError(t, err)
		require.Equal(t, domain.NodeKindLeaf, breakdown.Kind)
		require.Empty(t, breakdown.Holdings)
	})

	t.Run("unknown node", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Breakdown(ctx, "NOPE")
		require.ErrorContains(t, err, "unknown node NOPE")
	})
}
