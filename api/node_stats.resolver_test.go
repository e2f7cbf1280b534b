package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"assetgraph/internal"
	"assetgraph/internal/db/models/postgres/public/model"
	mock_repository "assetgraph/internal/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_nodeStats(t *testing.T) {
	t.Run("stats from persisted history", func(t *testing.T) {
		db, err := internal.NewTestDb()
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		valuationRepository := mock_repository.NewMockNodeValuationRepository(ctrl)

		handler := ApiHandler{
			Db:                  db,
			ValuationRepository: valuationRepository,
		}

		// three valuations spanning exactly one year, 100 -> 110
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		dates := []time.Time{start, start.AddDate(0, 6, 0), start.AddDate(1, 0, 0)}
		values := []float64{100, 105, 110}
		rows := []model.NodeValuation{}
		for i := range values {
			rows = append(rows, model.NodeValuation{
				ID:         uuid.New(),
				NodeID:     "TECH",
				Value:      values[i],
				Strategy:   "incremental",
				ComputedAt: dates[i],
			})
		}

		valuationRepository.EXPECT().
			List(db, "TECH", gomock.Any()).
			Return(rows, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/nodeStats?id=TECH&days=600", nil)

		handler.nodeStats(c)

		require.Equal(t, 200, w.Code)

		response := nodeStatsResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, "TECH", response.NodeID)
		require.Equal(t, 3, response.Valuations)
		require.InDelta(t, 0.10, response.AnnualizedReturn, 1e-9)
	})

	t.Run("missing id param", func(t *testing.T) {
		db, err := internal.NewTestDb()
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		handler := ApiHandler{
			Db:                  db,
			ValuationRepository: mock_repository.NewMockNodeValuationRepository(ctrl),
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/nodeStats", nil)

		handler.nodeStats(c)

		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "missing id param")
	})

	t.Run("persistence disabled", func(t *testing.T) {
		handler := ApiHandler{}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/nodeStats?id=TECH", nil)

		handler.nodeStats(c)

		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "persistence is not enabled")
	})
}
