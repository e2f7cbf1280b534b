package api

import (
	"context"
	"encoding/json"

	"assetgraph/internal/app"
	"assetgraph/internal/domain"

	"github.com/gin-gonic/gin"
)

type reconcileResponse struct {
	RunID   string          `json:"runId"`
	Checked int             `json:"checked"`
	Drift   []app.Drift     `json:"drift"`
	Profile json.RawMessage `json:"profile"`
}

func (m ApiHandler) reconcile(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	defer endProfile()
	ctx := context.WithValue(c.Request.Context(), domain.ContextProfileKey, profile)

	result, err := m.ReconcilerHandler.Reconcile(ctx)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	endProfile()
	profileJson, err := profile.ToJsonBytes()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, reconcileResponse{
		RunID:   result.RunID.String(),
		Checked: result.Checked,
		Drift:   result.Drift,
		Profile: profileJson,
	})
}
