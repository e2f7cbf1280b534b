package api

import (
	"fmt"
	"strconv"
	"time"

	"assetgraph/internal/calculator"

	"github.com/gin-gonic/gin"
)

type nodeStatsResponse struct {
	NodeID           string  `json:"nodeId"`
	Valuations       int     `json:"valuations"`
	AnnualizedStdev  float64 `json:"annualizedStdev"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	SharpeRatio      float64 `json:"sharpeRatio"`
}

// nodeStats summarizes a node's persisted valuation history over the last n
// days (default 30).
func (m ApiHandler) nodeStats(c *gin.Context) {
	if m.Db == nil || m.ValuationRepository == nil {
		returnErrorJsonCode(fmt.Errorf("persistence is not enabled"), c, 400)
		return
	}

	id := c.Query("id")
	if id == "" {
		returnErrorJsonCode(fmt.Errorf("missing id param"), c, 400)
		return
	}

	days := 30
	if daysParam := c.Query("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			returnErrorJsonCode(fmt.Errorf("invalid days param %q", daysParam), c, 400)
			return
		}
		days = parsed
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := m.ValuationRepository.List(m.Db, id, since)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	points := make([]calculator.ValuationPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, calculator.ValuationPoint{
			Date:  row.ComputedAt,
			Value: row.Value,
		})
	}

	result, err := calculator.CalculateMetrics(points)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, nodeStatsResponse{
		NodeID:           id,
		Valuations:       len(points),
		AnnualizedStdev:  result.AnnualizedStdev,
		AnnualizedReturn: result.AnnualizedReturn,
		SharpeRatio:      result.SharpeRatio,
	})
}
