package repository

import (
	"testing"

	"assetgraph/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_PriceEventFromUpdate(t *testing.T) {
	update := domain.NewPriceUpdate("NVDA", 878.37, "alpaca")

	row := PriceEventFromUpdate(update)

	require.Equal(t, update.EventID, row.ID)
	require.Equal(t, "NVDA", row.Symbol)
	require.Equal(t, 878.37, row.Price)
	require.Equal(t, "alpaca", row.Source)
	require.Equal(t, update.Time, row.EventTime)
	require.Equal(t, update.Time, row.CreatedAt)
}
