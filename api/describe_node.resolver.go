package api

import (
	"fmt"

	"assetgraph/internal/domain"
	"assetgraph/internal/service"

	"github.com/gin-gonic/gin"
)

type describeNodeResponse struct {
	NodeID      string `json:"nodeId"`
	Description string `json:"description"`
}

func (m ApiHandler) describeNode(c *gin.Context) {
	if m.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("descriptions are not enabled"), c, 400)
		return
	}

	id := c.Query("id")
	if id == "" {
		returnErrorJsonCode(fmt.Errorf("missing id param"), c, 400)
		return
	}

	breakdown, err := m.ValuationService.Breakdown(c.Request.Context(), id)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	holdings := domainHoldings(breakdown)

	description, err := m.GptRepository.DescribeValuation(c.Request.Context(), id, breakdown.Value.String(), holdings)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, describeNodeResponse{
		NodeID:      id,
		Description: description,
	})
}

func domainHoldings(breakdown *service.NodeBreakdown) []domain.Holding {
	out := []domain.Holding{}
	for _, line := range breakdown.Holdings {
		out = append(out, domain.Holding{
			ChildID: line.ChildID,
			Weight:  line.Weight,
		})
	}
	return out
}
