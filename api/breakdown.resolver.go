package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) breakdown(c *gin.Context) {
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

	c.JSON(200, breakdown)
}
