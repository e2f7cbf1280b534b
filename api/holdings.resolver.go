package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type holdingResponse struct {
	ParentID string  `json:"parentId"`
	ChildID  string  `json:"childId"`
	Weight   float64 `json:"weight"`
}

// holdings lists the definition rows the last ingest snapshotted, which may
// lag the graph the server is actually valuing.
func (m ApiHandler) holdings(c *gin.Context) {
	if m.Db == nil || m.HoldingRepository == nil {
		returnErrorJsonCode(fmt.Errorf("persistence is not enabled"), c, 400)
		return
	}

	rows, err := m.HoldingRepository.List(m.Db)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []holdingResponse{}
	for _, row := range rows {
		out = append(out, holdingResponse{
			ParentID: row.ParentID,
			ChildID:  row.ChildID,
			Weight:   row.Weight,
		})
	}

	c.JSON(200, out)
}
