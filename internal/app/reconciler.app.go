package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"assetgraph/internal/logger"
	"assetgraph/internal/metrics"
	"assetgraph/internal/repository"
	"assetgraph/internal/service"
	"assetgraph/internal/valuation"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// ReconcilerHandler audits the serving strategy's values against a from
// scratch recompute over the same graph. The two must agree after any update
// sequence; a mismatch means a propagation bug or a torn write somewhere.
//
// Runs are meant for quiet moments between feed ticks. A node that looks
// drifted while updates are in flight gets re-checked once before it is
// reported.
type ReconcilerHandler struct {
	ValuationService    service.ValuationService
	Graph               *graph.Graph
	Db                  *sql.DB
	ValuationRepository repository.NodeValuationRepository
	EmailRepository     repository.EmailRepository
	AlertRecipient      string
}

type Drift struct {
	NodeID     string          `json:"nodeId"`
	Cached     decimal.Decimal `json:"cached"`
	Recomputed decimal.Decimal `json:"recomputed"`
}

type ReconcileResult struct {
	RunID   uuid.UUID `json:"runId"`
	Checked int       `json:"checked"`
	Drift   []Drift   `json:"drift"`
}

func (h ReconcilerHandler) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	log := logger.FromContext(ctx)
	runID := uuid.New()

	profile := domain.ProfileFromContext(ctx)
	span, endSpan := profile.StartNewSpan("reconcile")
	defer endSpan()
	stages, endStages := span.NewSubProfile()
	defer endStages()

	full := valuation.NewFullStrategy(h.Graph)

	_, endStage := stages.StartNewSpan("snapshot served values")
	snapshot, err := h.ValuationService.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot served values: %w", err)
	}
	endStage()

	result := &ReconcileResult{
		RunID:   runID,
		Checked: len(snapshot),
		Drift:   []Drift{},
	}

	_, endStage = stages.StartNewSpan("recompute and compare")
	for _, nv := range snapshot {
		want, err := full.NodeValue(nv.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to recompute %s: %w", nv.ID, err)
		}
		if want.Equal(nv.Value) {
			continue
		}

		// maybe an update landed mid-scan; read both sides again
		cached, err := h.ValuationService.NodeValue(ctx, nv.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read %s: %w", nv.ID, err)
		}
		want, err = full.NodeValue(nv.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to recompute %s: %w", nv.ID, err)
		}
		if want.Equal(cached) {
			continue
		}

		metrics.ReconcileDriftTotal.Inc()
		result.Drift = append(result.Drift, Drift{
			NodeID:     nv.ID,
			Cached:     cached,
			Recomputed: want,
		})
	}
	endStage()

	if h.Db != nil && h.ValuationRepository != nil {
		_, endStage = stages.StartNewSpan("persist run")
		if err := h.persist(snapshot, runID); err != nil {
			return nil, fmt.Errorf("failed to persist reconcile run %s: %w", runID, err)
		}
		endStage()
	}

	if len(result.Drift) > 0 && h.EmailRepository != nil && h.AlertRecipient != "" {
		// alert failures don't fail the run
		subject, body := driftAlertEmail(result)
		if err := h.EmailRepository.SendEmail(h.AlertRecipient, subject, body); err != nil {
			log.Warnf("failed to send drift alert for run %s: %v", runID, err)
		}
	}

	if len(result.Drift) > 0 {
		log.Warnf("reconcile run %s: %d/%d node(s) drifted", runID, len(result.Drift), result.Checked)
	} else {
		log.Infof("reconcile run %s: %d node(s) clean", runID, result.Checked)
	}

	return result, nil
}

func (h ReconcilerHandler) persist(snapshot []domain.NodeValue, runID uuid.UUID) error {
	tx, err := h.Db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows := repository.ValuationsFromReceipt(snapshot, "reconcile", &runID, time.Now().UTC())
	if err := h.ValuationRepository.Add(tx, rows); err != nil {
		return err
	}

	return tx.Commit()
}

// StartReconcileScheduler runs Reconcile on the given cron schedule until
// the returned cron is stopped.
func StartReconcileScheduler(ctx context.Context, schedule string, handler ReconcilerHandler) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if _, err := handler.Reconcile(ctx); err != nil {
			logger.Error(fmt.Errorf("reconcile run failed: %w", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reconciler: %w", err)
	}

	c.Start()
	return c, nil
}
