package app

import (
	"context"
	"testing"

	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	mock_repository "assetgraph/internal/repository/mocks"
	"assetgraph/internal/service"
	"assetgraph/internal/valuation"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newReconcilerFixture(t *testing.T) (*graph.Graph, service.ValuationService) {
	t.Helper()

	g, err := graph.Build(graph.BuildInput{
		Leaves: []domain.LeafPrice{
			{ID: "A", Price: 100},
			{ID: "B", Price: 50},
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

	svc := service.NewValuationService(nil, g, valuation.NewCoordinator(g, strategy), "incremental", nil, nil, nil)
	return g, svc
}

func Test_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("clean after a normal update sequence", func(t *testing.T) {
		g, svc := newReconcilerFixture(t)

		_, err := svc.ApplyUpdate(ctx, domain.NewPriceUpdate("A", 120, "test"))
		require.NoError(t, err)

		handler := ReconcilerHandler{ValuationService: svc, Graph: g}
		result, err := handler.Reconcile(ctx)
		require.NoError(t, err)
		require.Equal(t, 4, result.Checked)
		require.Empty(t, result.Drift)
	})

	t.Run("flags values the strategy never recomputed", func(t *testing.T) {
		g, svc := newReconcilerFixture(t)

		// move the leaf behind the strategy's back so its cache goes stale
		h, ok := g.Handle("A")
		require.True(t, ok)
		require.NoError(t, g.SetPrice(h, decimal.NewFromInt(999)))

		handler := ReconcilerHandler{ValuationService: svc, Graph: g}
		result, err := handler.Reconcile(ctx)
		require.NoError(t, err)

		drifted := []string{}
		for _, d := range result.Drift {
			drifted = append(drifted, d.NodeID)
		}
		require.Equal(t, "", cmp.Diff([]string{"A", "P", "Q"}, drifted))

		require.True(t, result.Drift[0].Cached.Equal(decimal.NewFromInt(100)))
		require.True(t, result.Drift[0].Recomputed.Equal(decimal.NewFromInt(999)))
	})

	t.Run("drift triggers an alert email", func(t *testing.T) {
		g, svc := newReconcilerFixture(t)

		h, ok := g.Handle("A")
		require.True(t, ok)
		require.NoError(t, g.SetPrice(h, decimal.NewFromInt(999)))

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		emailRepository := mock_repository.NewMockEmailRepository(ctrl)
		emailRepository.EXPECT().
			SendEmail("ops@example.com", gomock.Any(), gomock.Any()).
			DoAndReturn(func(to, subject, body string) error {
				require.Contains(t, subject, "3 node(s) drifted")
				require.Contains(t, body, "<td>A</td><td>100</td><td>999</td>")
				return nil
			})

		handler := ReconcilerHandler{
			ValuationService: svc,
			Graph:            g,
			EmailRepository:  emailRepository,
			AlertRecipient:   "ops@example.com",
		}
		_, err := handler.Reconcile(ctx)
		require.NoError(t, err)
	})

	t.Run("clean runs stay quiet", func(t *testing.T) {
		g, svc := newReconcilerFixture(t)

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		emailRepository := mock_repository.NewMockEmailRepository(ctrl)

		handler := ReconcilerHandler{
			ValuationService: svc,
			Graph:            g,
			EmailRepository:  emailRepository,
			AlertRecipient:   "ops@example.com",
		}
		result, err := handler.Reconcile(ctx)
		require.NoError(t, err)
		require.Empty(t, result.Drift)
	})
}

func Test_driftAlertEmail(t *testing.T) {
	runID := uuid.New()
	result := &ReconcileResult{
		RunID:   runID,
		Checked: 4,
		Drift: []Drift{
			{NodeID: "P", Cached: decimal.NewFromInt(250), Recomputed: decimal.NewFromInt(2048)},
		},
	}

	subject, body := driftAlertEmail(result)

	require.Contains(t, subject, "1 node(s) drifted")
	require.Contains(t, subject, runID.String())
	require.Contains(t, body, "checked 4 node(s)")
	require.Contains(t, body, "<td>P</td><td>250</td><td>2048</td>")
}
