package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"assetgraph/internal/calculator"
	"assetgraph/internal/db/models/postgres/public/model"
	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"assetgraph/internal/logger"
	"assetgraph/internal/metrics"
	"assetgraph/internal/repository"
	"assetgraph/internal/stream"
	"assetgraph/internal/valuation"

	"github.com/shopspring/decimal"
)

// ValuationService is the write path of the whole system. Every price
// update, whether it came from a feed, the API or a synthetic expression,
// goes through ApplyUpdate: the strategy recomputes, the receipt gets
// persisted, broadcast to stream clients, and fed back into the synthetic
// engine until nothing else moves.
//
// Db, repositories, hub and synthetics are all optional; a bare strategy
// wrapped in this service still works for CLI runs with no postgres around.
type ValuationService interface {
	ApplyUpdate(ctx context.Context, update domain.PriceUpdate) ([]domain.NodeValue, error)
	NodeValue(ctx context.Context, nodeID string) (decimal.Decimal, error)
	Snapshot(ctx context.Context) ([]domain.NodeValue, error)
	Breakdown(ctx context.Context, nodeID string) (*NodeBreakdown, error)
	LeafIDs() []string
	StrategyName() string
	SetSynthetics(synthetics calculator.SyntheticService)
}

type NodeBreakdown struct {
	ID       string             `json:"id"`
	Kind     domain.NodeKind    `json:"kind"`
	Value    decimal.Decimal    `json:"value"`
	Level    int                `json:"level"`
	Holdings []BreakdownHolding `json:"holdings,omitempty"`
}

// BreakdownHolding is one position line with the child's current value and
// the exposure it contributes to the parent.
type BreakdownHolding struct {
	ChildID  string          `json:"childId"`
	Weight   decimal.Decimal `json:"weight"`
	Value    decimal.Decimal `json:"value"`
	Exposure decimal.Decimal `json:"exposure"`
}

func NewValuationService(
	db *sql.DB,
	g *graph.Graph,
	strategy valuation.Strategy,
	strategyName string,
	priceEventRepository repository.PriceEventRepository,
	valuationRepository repository.NodeValuationRepository,
	hub *stream.Hub,
) ValuationService {
	return &valuationServiceHandler{
		Db:                   db,
		Graph:                g,
		Strategy:             strategy,
		Name:                 strategyName,
		PriceEventRepository: priceEventRepository,
		ValuationRepository:  valuationRepository,
		Hub:                  hub,
	}
}

type valuationServiceHandler struct {
	Db                   *sql.DB
	Graph                *graph.Graph
	Strategy             valuation.Strategy
	Name                 string
	PriceEventRepository repository.PriceEventRepository
	ValuationRepository  repository.NodeValuationRepository
	Hub                  *stream.Hub
	Synthetics           calculator.SyntheticService
}

func (h *valuationServiceHandler) SetSynthetics(synthetics calculator.SyntheticService) {
	h.Synthetics = synthetics
}

func (h *valuationServiceHandler) StrategyName() string {
	return h.Name
}

func (h *valuationServiceHandler) LeafIDs() []string {
	return h.Graph.LeafIDs()
}

func (h *valuationServiceHandler) NodeValue(ctx context.Context, nodeID string) (decimal.Decimal, error) {
	return h.Strategy.NodeValue(nodeID)
}

// ApplyUpdate pushes one price through the graph. The returned receipt
// covers the update itself plus every synthetic it dragged along, in the
// order the nodes were recomputed.
func (h *valuationServiceHandler) ApplyUpdate(ctx context.Context, update domain.PriceUpdate) ([]domain.NodeValue, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	profile := domain.ProfileFromContext(ctx)
	_, endSpan := profile.StartNewSpan("apply " + update.LeafID)
	defer endSpan()

	receipt, err := h.applyOne(update)
	if err != nil {
		return nil, err
	}

	combined := receipt

	if h.Synthetics != nil {
		// breadth first over derived updates; the visited set stops a
		// synthetic from being repriced twice in one cascade
		visited := map[string]bool{update.LeafID: true}
		frontier := receipt
		for len(frontier) > 0 {
			derived, err := h.Synthetics.Recalculate(ctx, frontier)
			if err != nil {
				return nil, fmt.Errorf("failed to recalculate synthetics after %s: %w", update.EventID, err)
			}

			frontier = nil
			for _, d := range derived {
				if visited[d.LeafID] {
					continue
				}
				visited[d.LeafID] = true

				r, err := h.applyOne(d)
				if err != nil {
					return nil, fmt.Errorf("failed to apply synthetic update for %s: %w", d.LeafID, err)
				}
				combined = append(combined, r...)
				frontier = append(frontier, r...)
			}
		}
	}

	metrics.UpdateDuration.Observe(time.Since(start).Seconds())
	log.Infof("applied %s update %s to %s: %d node(s) recomputed", update.Source, update.EventID, update.LeafID, len(combined))

	return combined, nil
}

func (h *valuationServiceHandler) applyOne(update domain.PriceUpdate) ([]domain.NodeValue, error) {
	receipt, err := h.Strategy.ApplyPriceUpdate(update)
	if err != nil {
		return nil, fmt.Errorf("failed to apply update %s to %s: %w", update.EventID, update.LeafID, err)
	}

	metrics.PriceUpdatesTotal.WithLabelValues(update.Source).Inc()
	metrics.NodesRecomputedTotal.Add(float64(len(receipt)))

	if h.Db != nil {
		if err := h.persist(update, receipt); err != nil {
			return nil, fmt.Errorf("failed to persist update %s: %w", update.EventID, err)
		}
	}

	if h.Hub != nil && len(receipt) > 0 {
		h.Hub.Broadcast(receipt)
	}

	return receipt, nil
}

func (h *valuationServiceHandler) persist(update domain.PriceUpdate, receipt []domain.NodeValue) error {
	tx, err := h.Db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if h.PriceEventRepository != nil {
		err = h.PriceEventRepository.Add(tx, []model.PriceEvent{repository.PriceEventFromUpdate(update)})
		if err != nil {
			return err
		}
	}

	if h.ValuationRepository != nil {
		err = h.ValuationRepository.Add(tx, repository.ValuationsFromReceipt(receipt, h.Name, nil, update.Time))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Snapshot reads every node's current value, sorted by id.
func (h *valuationServiceHandler) Snapshot(ctx context.Context) ([]domain.NodeValue, error) {
	ids := make([]string, 0, h.Graph.Len())
	for n := 0; n < h.Graph.Len(); n++ {
		ids = append(ids, h.Graph.ID(n))
	}
	sort.Strings(ids)

	out := make([]domain.NodeValue, 0, len(ids))
	for _, id := range ids {
		value, err := h.Strategy.NodeValue(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read value of %s: %w", id, err)
		}
		out = append(out, domain.NodeValue{ID: id, Value: value})
	}

	return out, nil
}

func (h *valuationServiceHandler) Breakdown(ctx context.Context, nodeID string) (*NodeBreakdown, error) {
	n, ok := h.Graph.Handle(nodeID)
	if !ok {
		return nil, fmt.Errorf("unknown node %s", nodeID)
	}

	value, err := h.Strategy.NodeValue(nodeID)
	if err != nil {
		return nil, err
	}

	out := &NodeBreakdown{
		ID:    nodeID,
		Kind:  h.Graph.Kind(n),
		Value: value,
		Level: h.Graph.Level(n),
	}

	for _, holding := range h.Graph.Holdings(n) {
		childID := h.Graph.ID(holding.Child)
		childValue, err := h.Strategy.NodeValue(childID)
		if err != nil {
			return nil, fmt.Errorf("failed to read value of %s: %w", childID, err)
		}
		out.Holdings = append(out.Holdings, BreakdownHolding{
			ChildID:  childID,
			Weight:   holding.Weight,
			Value:    childValue,
			Exposure: holding.Weight.Mul(childValue),
		})
	}

	return out, nil
}
