package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) snapshot(c *gin.Context) {
	snapshot, err := m.ValuationService.Snapshot(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, snapshot)
}
