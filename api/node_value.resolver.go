package api

import (
	"fmt"

	"assetgraph/internal/domain"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) nodeValue(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		returnErrorJsonCode(fmt.Errorf("missing id param"), c, 400)
		return
	}

	value, err := m.ValuationService.NodeValue(c.Request.Context(), id)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, domain.NodeValue{ID: id, Value: value})
}
