package repository

import (
	"database/sql"
	"fmt"
	"time"

	"assetgraph/internal/db/models/postgres/public/model"
	. "assetgraph/internal/db/models/postgres/public/table"
	"assetgraph/internal/domain"

	"github.com/google/uuid"

	. "github.com/go-jet/jet/v2/postgres"
)

// HoldingRepository persists portfolio definitions: one row per holding line.
type HoldingRepository interface {
	Add(tx *sql.Tx, holdings []model.PortfolioHolding) error
	List(db *sql.DB) ([]model.PortfolioHolding, error)
	DeleteAll(tx *sql.Tx) error
}

func NewHoldingRepository() HoldingRepository {
	return HoldingRepositoryHandler{}
}

type HoldingRepositoryHandler struct{}

func (h HoldingRepositoryHandler) Add(tx *sql.Tx, holdings []model.PortfolioHolding) error {
	if len(holdings) == 0 {
		return nil
	}
	query := PortfolioHolding.
		INSERT(PortfolioHolding.AllColumns).
		MODELS(holdings)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add holdings to db: %w", err)
	}

	return nil
}

func (h HoldingRepositoryHandler) List(db *sql.DB) ([]model.PortfolioHolding, error) {
	query := PortfolioHolding.
		SELECT(PortfolioHolding.AllColumns).
		ORDER_BY(PortfolioHolding.CreatedAt.ASC(), PortfolioHolding.ID.ASC())

	out := []model.PortfolioHolding{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	return out, nil
}

func (h HoldingRepositoryHandler) DeleteAll(tx *sql.Tx) error {
	_, err := PortfolioHolding.DELETE().WHERE(Bool(true)).Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}
	return nil
}

// HoldingsFromEdges converts loader output into rows.
func HoldingsFromEdges(edges []domain.Edge) []model.PortfolioHolding {
	out := []model.PortfolioHolding{}
	for _, e := range edges {
		out = append(out, model.PortfolioHolding{
			ID:        uuid.New(),
			ParentID:  e.ParentID,
			ChildID:   e.ChildID,
			Weight:    e.Weight,
			CreatedAt: time.Now().UTC(),
		})
	}
	return out
}

// EdgesFromHoldings converts stored rows back into builder input.
func EdgesFromHoldings(holdings []model.PortfolioHolding) []domain.Edge {
	out := []domain.Edge{}
	for _, h := range holdings {
		out = append(out, domain.Edge{
			ParentID: h.ParentID,
			ChildID:  h.ChildID,
			Weight:   h.Weight,
		})
	}
	return out
}
