package data

import (
	"database/sql"
	"fmt"
	"time"

	"assetgraph/internal/db/models/postgres/public/model"
	"assetgraph/internal/repository"

	"github.com/google/uuid"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// IngestHistoricalPrices backfills daily closes for one symbol into the
// price event log. Rows that already exist are skipped by the repository's
// conflict handling, so re-running over the same range is safe.
func IngestHistoricalPrices(
	tx *sql.Tx,
	symbol string,
	start time.Time,
	priceEventRepository repository.PriceEventRepository,
) error {
	now := time.Now()
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	models := []model.PriceEvent{}

	for iter.Next() {
		models = append(models, model.PriceEvent{
			ID:        uuid.New(),
			Symbol:    symbol,
			Price:     iter.Bar().AdjClose.InexactFloat64(),
			Source:    "yahoo",
			EventTime: time.Unix(int64(iter.Bar().Timestamp), 0).UTC(),
			CreatedAt: time.Now().UTC(),
		})
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	err := priceEventRepository.Add(tx, models)
	if err != nil {
		return err
	}

	return nil
}

// IngestLeafHistory backfills every given leaf, collecting failures so one
// bad symbol does not abort the rest of the run.
func IngestLeafHistory(
	tx *sql.Tx,
	leafIDs []string,
	start time.Time,
	priceEventRepository repository.PriceEventRepository,
) error {
	if len(leafIDs) == 0 {
		return fmt.Errorf("no leaves to ingest")
	}

	errors := []error{}

	for _, leafID := range leafIDs {
		err := IngestHistoricalPrices(tx, leafID, start, priceEventRepository)
		if err != nil {
			err = fmt.Errorf("failed to ingest historical prices for %s: %w", leafID, err)
			fmt.Println(err)
			errors = append(errors, err)
		} else {
			fmt.Println("added", leafID)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to ingest %d/%d leaves. first err: %w", len(errors), len(leafIDs), errors[0])
	}

	return nil
}
