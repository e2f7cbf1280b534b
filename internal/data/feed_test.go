package data

import (
	"context"
	"fmt"
	"testing"

	"assetgraph/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	name   string
	prices map[string]float64
	err    error
	calls  int
}

func (s *stubSource) Name() string {
	return s.name
}

func (s *stubSource) LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.prices, nil
}

func Test_PollOnce(t *testing.T) {
	t.Run("pushes every symbol on first poll, in sorted order", func(t *testing.T) {
		source := &stubSource{
			name: "sim",
			prices: map[string]float64{
				"MSFT": 425,
				"AAPL": 170.5,
			},
		}
		pushed := []domain.PriceUpdate{}
		h := &FeedHandler{
			Source:  source,
			Symbols: []string{"AAPL", "MSFT"},
			Sink: func(ctx context.Context, update domain.PriceUpdate) error {
				pushed = append(pushed, update)
				return nil
			},
		}

		n, err := h.PollOnce(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, n)

		ids := []string{}
		for _, update := range pushed {
			ids = append(ids, update.LeafID)
			require.Equal(t, "sim", update.Source)
		}
		require.Equal(t, "", cmp.Diff([]string{"AAPL", "MSFT"}, ids))
	})

	t.Run("skips symbols whose price did not move", func(t *testing.T) {
		source := &stubSource{
			name:   "sim",
			prices: map[string]float64{"AAPL": 170.5, "MSFT": 425},
		}
		pushed := []domain.PriceUpdate{}
		h := &FeedHandler{
			Source:  source,
			Symbols: []string{"AAPL", "MSFT"},
			Sink: func(ctx context.Context, update domain.PriceUpdate) error {
				pushed = append(pushed, update)
				return nil
			},
		}

		_, err := h.PollOnce(context.Background())
		require.NoError(t, err)

		source.prices = map[string]float64{"AAPL": 173, "MSFT": 425}
		n, err := h.PollOnce(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, n)
		require.Equal(t, "AAPL", pushed[len(pushed)-1].LeafID)
		require.Equal(t, float64(173), pushed[len(pushed)-1].Price)
	})

	t.Run("does not poll while the market is closed", func(t *testing.T) {
		source := &stubSource{
			name:   "alpaca",
			prices: map[string]float64{"AAPL": 170.5},
		}
		h := &FeedHandler{
			Source:     source,
			Symbols:    []string{"AAPL"},
			Sink:       func(ctx context.Context, update domain.PriceUpdate) error { return nil },
			MarketOpen: func() (bool, error) { return false, nil },
		}

		n, err := h.PollOnce(context.Background())
		require.NoError(t, err)
		require.Equal(t, 0, n)
		require.Equal(t, 0, source.calls)
	})

	t.Run("stops on the first sink error", func(t *testing.T) {
		source := &stubSource{
			name:   "sim",
			prices: map[string]float64{"AAPL": 1, "MSFT": 2, "NVDA": 3},
		}
		h := &FeedHandler{
			Source:  source,
			Symbols: []string{"AAPL", "MSFT", "NVDA"},
			Sink: func(ctx context.Context, update domain.PriceUpdate) error {
				if update.LeafID == "MSFT" {
					return fmt.Errorf("downstream rejected update")
				}
				return nil
			},
		}

		n, err := h.PollOnce(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "MSFT")
		require.Equal(t, 1, n)
	})
}

func Test_SimSource(t *testing.T) {
	t.Run("same seed replays the same walk", func(t *testing.T) {
		a := NewSimSource(42, map[string]float64{"AAPL": 170.5})
		b := NewSimSource(42, map[string]float64{"AAPL": 170.5})

		for i := 0; i < 10; i++ {
			pa, err := a.LatestPrices(context.Background(), []string{"AAPL"})
			require.NoError(t, err)
			pb, err := b.LatestPrices(context.Background(), []string{"AAPL"})
			require.NoError(t, err)
			require.Equal(t, "", cmp.Diff(pa, pb))
		}
	})

	t.Run("unknown symbols start at 100", func(t *testing.T) {
		s := NewSimSource(1, nil)
		prices, err := s.LatestPrices(context.Background(), []string{"XYZ"})
		require.NoError(t, err)
		require.InDelta(t, 100, prices["XYZ"], 0.5)
	})
}

func Test_BreakerSource(t *testing.T) {
	t.Run("passes prices through", func(t *testing.T) {
		source := &stubSource{
			name:   "sim",
			prices: map[string]float64{"AAPL": 170.5},
		}
		b := NewBreakerSource(source, zap.NewNop().Sugar())

		prices, err := b.LatestPrices(context.Background(), []string{"AAPL"})
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]float64{"AAPL": 170.5}, prices))
		require.Equal(t, "sim", b.Name())
	})

	t.Run("opens after repeated failures", func(t *testing.T) {
		source := &stubSource{
			name: "alpaca",
			err:  fmt.Errorf("vendor is down"),
		}
		b := NewBreakerSource(source, zap.NewNop().Sugar())

		var err error
		for i := 0; i < 7; i++ {
			_, err = b.LatestPrices(context.Background(), []string{"AAPL"})
			require.Error(t, err)
		}

		require.ErrorIs(t, err, gobreaker.ErrOpenState)
		require.Equal(t, 6, source.calls)
	})
}
