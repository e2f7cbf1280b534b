package repository

import (
	"testing"
	"time"

	"assetgraph/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_ValuationsFromReceipt(t *testing.T) {
	receipt := []domain.NodeValue{
		{ID: "AAPL", Value: decimal.NewFromFloat(172.5)},
		{ID: "TECH", Value: decimal.NewFromInt(362050)},
	}
	at := time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC)

	t.Run("rows carry strategy and timestamp", func(t *testing.T) {
		rows := ValuationsFromReceipt(receipt, "incremental", nil, at)
		require.Len(t, rows, 2)

		require.Equal(t, "AAPL", rows[0].NodeID)
		require.Equal(t, 172.5, rows[0].Value)
		require.Equal(t, "TECH", rows[1].NodeID)
		require.Equal(t, float64(362050), rows[1].Value)

		for _, row := range rows {
			require.NotEqual(t, uuid.Nil, row.ID)
			require.Equal(t, "incremental", row.Strategy)
			require.Nil(t, row.RunID)
			require.Equal(t, at, row.ComputedAt)
		}
	})

	t.Run("reconcile runs tag every row", func(t *testing.T) {
		runID := uuid.New()
		rows := ValuationsFromReceipt(receipt, "reconcile", &runID, at)
		for _, row := range rows {
			require.NotNil(t, row.RunID)
			require.Equal(t, runID, *row.RunID)
		}
	})
}
