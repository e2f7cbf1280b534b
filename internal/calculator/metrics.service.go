package calculator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// ValuationPoint is one historical mark of a node, as read back from the
// valuation log.
type ValuationPoint struct {
	Date  time.Time
	Value float64
}

type CalculateMetricsResult struct {
	AnnualizedStdev  float64
	AnnualizedReturn float64
	SharpeRatio      float64
}

// CalculateMetrics summarizes a node's valuation history. It assumes the
// points are roughly daily marks; the stdev annualization uses the 252
// trading day convention.
func CalculateMetrics(points []ValuationPoint) (*CalculateMetricsResult, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 valuations, got %d", len(points))
	}

	sorted := make([]ValuationPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	returns := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].Value
		if prev == 0 {
			return nil, fmt.Errorf("cannot compute return from zero value at %s", sorted[i-1].Date.Format(time.RFC3339))
		}
		returns = append(returns, (sorted[i].Value-prev)/prev)
	}

	// a sample stdev needs two returns or it comes back NaN
	if len(returns) < 2 {
		return nil, fmt.Errorf("need at least 3 valuations for a stdev, got %d", len(points))
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stdev: %w", err)
	}

	annualizedStdev := stdev * math.Sqrt(252)

	startValue := sorted[0].Value
	endValue := sorted[len(sorted)-1].Value
	if startValue <= 0 {
		return nil, fmt.Errorf("cannot annualize from non-positive start value %f", startValue)
	}

	numHours := sorted[len(sorted)-1].Date.Sub(sorted[0].Date).Hours()
	numYears := numHours / (365 * 24)
	if numYears <= 0 {
		return nil, fmt.Errorf("valuations span no time")
	}
	annualizedReturn := math.Pow(endValue/startValue, 1/numYears) - 1

	sharpeRatio := 0.0
	if annualizedStdev > 0 {
		sharpeRatio = annualizedReturn / annualizedStdev
	}

	return &CalculateMetricsResult{
		AnnualizedStdev:  annualizedStdev,
		AnnualizedReturn: annualizedReturn,
		SharpeRatio:      sharpeRatio,
	}, nil
}
