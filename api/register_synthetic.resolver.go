package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type registerSyntheticRequest struct {
	LeafID     string `json:"leafId" binding:"required"`
	Expression string `json:"expression" binding:"required"`
}

func (m ApiHandler) registerSynthetic(c *gin.Context) {
	if m.SyntheticService == nil {
		returnErrorJsonCode(fmt.Errorf("synthetics are not enabled"), c, 400)
		return
	}

	var req registerSyntheticRequest
	if err := c.BindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}

	if err := m.SyntheticService.Register(c.Request.Context(), req.LeafID, req.Expression); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, map[string]string{
		"message": "ok",
	})
}
