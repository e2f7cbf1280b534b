package repository

import (
	"database/sql"
	"fmt"

	"assetgraph/internal/db/models/postgres/public/model"
	. "assetgraph/internal/db/models/postgres/public/table"
	"assetgraph/internal/domain"

	. "github.com/go-jet/jet/v2/postgres"
)

// PriceEventRepository is the audit log of every price that entered the
// system, whatever the source.
type PriceEventRepository interface {
	Add(tx *sql.Tx, events []model.PriceEvent) error
	List(db *sql.DB, symbol string) ([]model.PriceEvent, error)
}

func NewPriceEventRepository() PriceEventRepository {
	return PriceEventRepositoryHandler{}
}

type PriceEventRepositoryHandler struct{}

func (h PriceEventRepositoryHandler) Add(tx *sql.Tx, events []model.PriceEvent) error {
	if len(events) == 0 {
		return nil
	}
	query := PriceEvent.
		INSERT(PriceEvent.AllColumns).
		MODELS(events).
		ON_CONFLICT(PriceEvent.ID).
		DO_NOTHING()

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add price events to db: %w", err)
	}

	return nil
}

func (h PriceEventRepositoryHandler) List(db *sql.DB, symbol string) ([]model.PriceEvent, error) {
	query := PriceEvent.
		SELECT(PriceEvent.AllColumns).
		WHERE(PriceEvent.Symbol.EQ(String(symbol))).
		ORDER_BY(PriceEvent.EventTime.ASC())

	out := []model.PriceEvent{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list price events for %s: %w", symbol, err)
	}

	return out, nil
}

// PriceEventFromUpdate converts an applied update into its audit row.
func PriceEventFromUpdate(update domain.PriceUpdate) model.PriceEvent {
	return model.PriceEvent{
		ID:        update.EventID,
		Symbol:    update.LeafID,
		Price:     update.Price,
		Source:    update.Source,
		EventTime: update.Time,
		CreatedAt: update.Time,
	}
}
