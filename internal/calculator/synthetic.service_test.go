package calculator

import (
	"context"
	"fmt"
	"testing"

	"assetgraph/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeValueSource map[string]float64

func (f fakeValueSource) NodeValue(ctx context.Context, nodeID string) (decimal.Decimal, error) {
	v, ok := f[nodeID]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown node %s", nodeID)
	}
	return decimal.NewFromFloat(v), nil
}

func Test_SyntheticService(t *testing.T) {
	ctx := context.Background()

	t.Run("recalculates when a dependency changes", func(t *testing.T) {
		values := fakeValueSource{"TECH": 250, "AUTOS": 100}
		svc := NewSyntheticService(values)

		err := svc.Register(ctx, "SPREAD", `value("TECH") - 2 * value("AUTOS")`)
		require.NoError(t, err)

		updates, err := svc.Recalculate(ctx, []domain.NodeValue{{ID: "TECH"}})
		require.NoError(t, err)
		require.Len(t, updates, 1)
		require.Equal(t, "SPREAD", updates[0].LeafID)
		require.Equal(t, float64(50), updates[0].Price)
		require.Equal(t, "synthetic", updates[0].Source)
	})

	t.Run("ignores changes to nodes the expression never reads", func(t *testing.T) {
		values := fakeValueSource{"TECH": 250, "AUTOS": 100}
		svc := NewSyntheticService(values)

		require.NoError(t, svc.Register(ctx, "SPREAD", `value("TECH") - value("AUTOS")`))

		updates, err := svc.Recalculate(ctx, []domain.NodeValue{{ID: "INDUSTRIALS"}})
		require.NoError(t, err)
		require.Empty(t, updates)
	})

	t.Run("recalculates touched synthetics in id order", func(t *testing.T) {
		values := fakeValueSource{"TECH": 250}
		svc := NewSyntheticService(values)

		require.NoError(t, svc.Register(ctx, "B_HALF", `value("TECH") / 2.0`))
		require.NoError(t, svc.Register(ctx, "A_DOUBLE", `value("TECH") * 2`))

		updates, err := svc.Recalculate(ctx, []domain.NodeValue{{ID: "TECH"}})
		require.NoError(t, err)

		ids := []string{}
		for _, update := range updates {
			ids = append(ids, update.LeafID)
		}
		require.Equal(t, "", cmp.Diff([]string{"A_DOUBLE", "B_HALF"}, ids))
		require.Equal(t, float64(500), updates[0].Price)
		require.Equal(t, float64(125), updates[1].Price)
	})

	t.Run("rejects bad registrations", func(t *testing.T) {
		values := fakeValueSource{"TECH": 250}
		svc := NewSyntheticService(values)

		err := svc.Register(ctx, "", `value("TECH")`)
		require.ErrorContains(t, err, "needs an id")

		err = svc.Register(ctx, "BAD", `value("TECH") +`)
		require.ErrorContains(t, err, "failed to register synthetic BAD")

		err = svc.Register(ctx, "CONST", `1 + 2`)
		require.ErrorContains(t, err, "reads no node values")

		err = svc.Register(ctx, "LOOP", `value("LOOP")`)
		require.ErrorContains(t, err, "failed to register synthetic LOOP")

		err = svc.Register(ctx, "MISSING", `value("NOPE")`)
		require.ErrorContains(t, err, "unknown node NOPE")
	})

	t.Run("rejects non-finite results", func(t *testing.T) {
		values := fakeValueSource{"TECH": 250, "DENOM": 1}
		svc := NewSyntheticService(values)

		require.NoError(t, svc.Register(ctx, "RATIO", `value("TECH") / value("DENOM")`))

		values["DENOM"] = 0
		_, err := svc.Recalculate(ctx, []domain.NodeValue{{ID: "DENOM"}})
		require.ErrorContains(t, err, "infinity")
	})

	t.Run("helper functions", func(t *testing.T) {
		values := fakeValueSource{"TECH": 250, "AUTOS": 300}
		svc := NewSyntheticService(values)

		require.NoError(t, svc.Register(ctx, "WORST", `min(value("TECH"), value("AUTOS"))`))
		require.NoError(t, svc.Register(ctx, "GAP", `abs(value("TECH") - value("AUTOS"))`))

		updates, err := svc.Recalculate(ctx, []domain.NodeValue{{ID: "TECH"}, {ID: "AUTOS"}})
		require.NoError(t, err)
		require.Len(t, updates, 2)
		require.Equal(t, "GAP", updates[0].LeafID)
		require.Equal(t, float64(50), updates[0].Price)
		require.Equal(t, "WORST", updates[1].LeafID)
		require.Equal(t, float64(250), updates[1].Price)
	})

	t.Run("expressions snapshot", func(t *testing.T) {
		values := fakeValueSource{"TECH": 250}
		svc := NewSyntheticService(values)

		require.NoError(t, svc.Register(ctx, "DOUBLE", `value("TECH") * 2`))

		require.Equal(t, "", cmp.Diff(map[string]string{
			"DOUBLE": `value("TECH") * 2`,
		}, svc.Expressions()))
	})
}
