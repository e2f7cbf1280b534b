package integration_tests

import (
	"context"

	"assetgraph/internal/repository"

	"github.com/shopspring/decimal"
)

// NewMockAlpacaRepositoryForTests returns canned quotes for the symbols the
// fixtures use, so nothing in CI talks to alpaca.
func NewMockAlpacaRepositoryForTests() repository.AlpacaRepository {
	return mockAlpacaForTestsHandler{}
}

type mockAlpacaForTestsHandler struct {
}

func (m mockAlpacaForTestsHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := map[string]decimal.Decimal{
		"AAPL": decimal.NewFromFloat(172.30499267578125),
		"MSFT": decimal.NewFromFloat(424.5199890136719),
		"NVDA": decimal.NewFromFloat(878.3699951171875),
		"FORD": decimal.NewFromFloat(12.0649995803833),
		"TSLA": decimal.NewFromFloat(248.4199981689453),
		"BMW":  decimal.NewFromFloat(95.33999633789062),
	}

	out := map[string]decimal.Decimal{}
	for _, symbol := range symbols {
		if price, ok := prices[symbol]; ok {
			out[symbol] = price
		}
	}
	return out, nil
}

func (m mockAlpacaForTestsHandler) IsMarketOpen() (bool, error) {
	return true, nil
}
