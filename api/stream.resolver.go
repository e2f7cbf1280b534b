package api

import (
	"fmt"
	"net/http"

	"assetgraph/internal/stream"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamValuations upgrades to a websocket, sends the current snapshot, then
// leaves the connection registered with the hub for live receipts. The read
// loop exists only to notice the client going away.
func (m ApiHandler) streamValuations(c *gin.Context) {
	if m.Hub == nil {
		returnErrorJsonCode(fmt.Errorf("streaming is not enabled"), c, 400)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to upgrade connection: %w", err), c)
		return
	}

	snapshot, err := m.ValuationService.Snapshot(c.Request.Context())
	if err != nil {
		conn.Close()
		return
	}
	if err := conn.WriteJSON(stream.Message{Type: "snapshot", Updates: snapshot}); err != nil {
		conn.Close()
		return
	}

	m.Hub.Register(conn)

	go func() {
		defer m.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
