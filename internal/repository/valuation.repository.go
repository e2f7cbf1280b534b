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

// NodeValuationRepository records computed values over time, one row per node
// per recompute. The history feeds the stats endpoints and the reconciler's
// drift reports.
type NodeValuationRepository interface {
	Add(tx *sql.Tx, valuations []model.NodeValuation) error
	List(db *sql.DB, nodeID string, since time.Time) ([]model.NodeValuation, error)
}

func NewNodeValuationRepository() NodeValuationRepository {
	return NodeValuationRepositoryHandler{}
}

type NodeValuationRepositoryHandler struct{}

func (h NodeValuationRepositoryHandler) Add(tx *sql.Tx, valuations []model.NodeValuation) error {
	if len(valuations) == 0 {
		return nil
	}
	query := NodeValuation.
		INSERT(NodeValuation.AllColumns).
		MODELS(valuations)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add node valuations to db: %w", err)
	}

	return nil
}

func (h NodeValuationRepositoryHandler) List(db *sql.DB, nodeID string, since time.Time) ([]model.NodeValuation, error) {
	query := NodeValuation.
		SELECT(NodeValuation.AllColumns).
		WHERE(
			AND(
				NodeValuation.NodeID.EQ(String(nodeID)),
				NodeValuation.ComputedAt.GT_EQ(TimestampzT(since)),
			),
		).
		ORDER_BY(NodeValuation.ComputedAt.ASC())

	out := []model.NodeValuation{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuations for %s: %w", nodeID, err)
	}

	return out, nil
}

// ValuationsFromReceipt converts an update receipt into rows.
func ValuationsFromReceipt(receipt []domain.NodeValue, strategy string, runID *uuid.UUID, at time.Time) []model.NodeValuation {
	out := []model.NodeValuation{}
	for _, nv := range receipt {
		out = append(out, model.NodeValuation{
			ID:         uuid.New(),
			NodeID:     nv.ID,
			Value:      nv.Value.InexactFloat64(),
			Strategy:   strategy,
			RunID:      runID,
			ComputedAt: at,
		})
	}
	return out
}
