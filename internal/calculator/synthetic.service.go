package calculator

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"assetgraph/internal/domain"

	"github.com/maja42/goval"
	"github.com/shopspring/decimal"
)

// NodeValueSource yields the current value of a node by id. The valuation
// service satisfies this.
type NodeValueSource interface {
	NodeValue(ctx context.Context, nodeID string) (decimal.Decimal, error)
}

// SyntheticService manages synthetic leaves: instruments priced by an
// expression over other nodes' values rather than by a feed. When any node
// an expression reads changes, Recalculate produces the synthetic's next
// price update.
type SyntheticService interface {
	Register(ctx context.Context, leafID string, expression string) error
	Recalculate(ctx context.Context, changed []domain.NodeValue) ([]domain.PriceUpdate, error)
	Expressions() map[string]string
}

func NewSyntheticService(values NodeValueSource) SyntheticService {
	return &syntheticServiceHandler{
		Values:      values,
		expressions: map[string]string{},
		deps:        map[string]map[string]bool{},
	}
}

type syntheticServiceHandler struct {
	Values NodeValueSource

	mu          sync.RWMutex
	expressions map[string]string
	deps        map[string]map[string]bool
}

func (h *syntheticServiceHandler) constructFunctionMap(ctx context.Context, record map[string]bool) map[string]goval.ExpressionFunction {
	return map[string]goval.ExpressionFunction{
		// value(nodeID) - the node's current value
		"value": func(args ...interface{}) (interface{}, error) {
			if len(args) < 1 {
				return 0, fmt.Errorf("value needs 1 arg, got %d", len(args))
			}
			nodeID, ok := args[0].(string)
			if !ok {
				return 0, fmt.Errorf("value needs a string node id, got %v", args[0])
			}
			if record != nil {
				record[nodeID] = true
			}
			v, err := h.Values.NodeValue(ctx, nodeID)
			if err != nil {
				return 0, err
			}
			return v.InexactFloat64(), nil
		},

		"abs": func(args ...interface{}) (interface{}, error) {
			if len(args) < 1 {
				return 0, fmt.Errorf("abs needs 1 arg, got %d", len(args))
			}
			v, err := toFloat(args[0])
			if err != nil {
				return 0, err
			}
			return math.Abs(v), nil
		},

		"min": func(args ...interface{}) (interface{}, error) {
			if len(args) < 2 {
				return 0, fmt.Errorf("min needs 2 args, got %d", len(args))
			}
			a, err := toFloat(args[0])
			if err != nil {
				return 0, err
			}
			b, err := toFloat(args[1])
			if err != nil {
				return 0, err
			}
			return math.Min(a, b), nil
		},

		"max": func(args ...interface{}) (interface{}, error) {
			if len(args) < 2 {
				return 0, fmt.Errorf("max needs 2 args, got %d", len(args))
			}
			a, err := toFloat(args[0])
			if err != nil {
				return 0, err
			}
			b, err := toFloat(args[1])
			if err != nil {
				return 0, err
			}
			return math.Max(a, b), nil
		},
	}
}

func toFloat(v interface{}) (float64, error) {
	switch r := v.(type) {
	case float64:
		return r, nil
	case int:
		return float64(r), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func (h *syntheticServiceHandler) evaluate(ctx context.Context, leafID string, expression string, record map[string]bool) (float64, error) {
	eval := goval.NewEvaluator()
	variables := map[string]interface{}{}
	functions := h.constructFunctionMap(ctx, record)

	result, err := eval.Evaluate(expression, variables, functions)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate expression for %s: %w", leafID, err)
	}

	value, err := toFloat(result)
	if err != nil {
		return 0, fmt.Errorf("expression for %s did not produce a number: %w", leafID, err)
	}
	if math.IsNaN(value) {
		return 0, fmt.Errorf("calculated NaN as expression result for %s", leafID)
	}
	if math.IsInf(value, 0) {
		return 0, fmt.Errorf("calculated infinity as expression result for %s", leafID)
	}

	return value, nil
}

// Register validates the expression by evaluating it once against current
// values and records which nodes it reads. Dependencies are fixed at
// registration time.
func (h *syntheticServiceHandler) Register(ctx context.Context, leafID string, expression string) error {
	if leafID == "" {
		return fmt.Errorf("synthetic needs an id")
	}

	record := map[string]bool{}
	if _, err := h.evaluate(ctx, leafID, expression, record); err != nil {
		return fmt.Errorf("failed to register synthetic %s: %w", leafID, err)
	}
	if len(record) == 0 {
		return fmt.Errorf("failed to register synthetic %s: expression reads no node values", leafID)
	}
	if record[leafID] {
		return fmt.Errorf("failed to register synthetic %s: expression reads its own value", leafID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.expressions[leafID] = expression
	h.deps[leafID] = record

	return nil
}

// Recalculate evaluates every synthetic that reads at least one of the
// changed nodes and returns their next price updates, ordered by synthetic
// id. The caller applies the updates; chained synthetics resolve over
// repeated calls.
func (h *syntheticServiceHandler) Recalculate(ctx context.Context, changed []domain.NodeValue) ([]domain.PriceUpdate, error) {
	h.mu.RLock()
	touched := []string{}
	expressions := map[string]string{}
	for leafID, deps := range h.deps {
		for _, nodeValue := range changed {
			if deps[nodeValue.ID] {
				touched = append(touched, leafID)
				expressions[leafID] = h.expressions[leafID]
				break
			}
		}
	}
	h.mu.RUnlock()

	sort.Strings(touched)

	updates := []domain.PriceUpdate{}
	for _, leafID := range touched {
		value, err := h.evaluate(ctx, leafID, expressions[leafID], nil)
		if err != nil {
			return nil, fmt.Errorf("failed to recalculate synthetic %s: %w", leafID, err)
		}
		updates = append(updates, domain.NewPriceUpdate(leafID, value, "synthetic"))
	}

	return updates, nil
}

func (h *syntheticServiceHandler) Expressions() map[string]string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := map[string]string{}
	for leafID, expression := range h.expressions {
		out[leafID] = expression
	}
	return out
}
