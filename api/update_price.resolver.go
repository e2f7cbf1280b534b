package api

import (
	"fmt"

	"assetgraph/internal/domain"

	"github.com/gin-gonic/gin"
)

type updatePriceRequest struct {
	LeafID string  `json:"leafId" binding:"required"`
	Price  float64 `json:"price"`
	Source string  `json:"source"`
}

type updatePriceResponse struct {
	EventID    string             `json:"eventId"`
	Recomputed []domain.NodeValue `json:"recomputed"`
}

func (m ApiHandler) updatePrice(c *gin.Context) {
	var req updatePriceRequest
	if err := c.BindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	update := domain.NewPriceUpdate(req.LeafID, req.Price, source)
	receipt, err := m.ValuationService.ApplyUpdate(c.Request.Context(), update)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, updatePriceResponse{
		EventID:    update.EventID.String(),
		Recomputed: receipt,
	})
}
