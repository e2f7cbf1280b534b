package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type priceHistoryResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Source string  `json:"source"`
	Time   string  `json:"time"`
}

func (m ApiHandler) priceHistory(c *gin.Context) {
	if m.Db == nil || m.PriceEventRepository == nil {
		returnErrorJsonCode(fmt.Errorf("persistence is not enabled"), c, 400)
		return
	}

	id := c.Query("id")
	if id == "" {
		returnErrorJsonCode(fmt.Errorf("missing id param"), c, 400)
		return
	}

	events, err := m.PriceEventRepository.List(m.Db, id)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []priceHistoryResponse{}
	for _, event := range events {
		out = append(out, priceHistoryResponse{
			Symbol: event.Symbol,
			Price:  event.Price,
			Source: event.Source,
			Time:   event.EventTime.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(200, out)
}
