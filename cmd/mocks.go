package cmd

import (
	"context"

	"assetgraph/internal/repository"

	"github.com/shopspring/decimal"
)

const UseMockAlpaca = false

// alpaca's clock reports closed most of the day, which makes local runs dead
// quiet. this wraps the real repository and pretends the market is always
// open. should not be used in prod, obv

type mockAlpacaRepositoryHandler struct {
	realAlpacaRepository repository.AlpacaRepository
}

func NewMockAlpacaRepository(alpacaRepository repository.AlpacaRepository) repository.AlpacaRepository {
	return mockAlpacaRepositoryHandler{
		realAlpacaRepository: alpacaRepository,
	}
}

func (m mockAlpacaRepositoryHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	return m.realAlpacaRepository.GetLatestPrices(ctx, symbols)
}

func (m mockAlpacaRepositoryHandler) IsMarketOpen() (bool, error) {
	return true, nil
}
