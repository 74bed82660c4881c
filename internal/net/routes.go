package net

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/modu-apps/cell-eater/internal/protocol"
	"github.com/modu-apps/cell-eater/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventStats supplies event-pipeline counters for /diagnostics. The logging
// Router satisfies it.
type EventStats interface {
	Stats() logging.RouterStats
}

// Routes registers the room's HTTP surface on a gin engine.
func (h *Hub) Routes(r *gin.Engine, stats EventStats) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/diagnostics", func(c *gin.Context) {
		var counters logging.RouterStats
		if stats != nil {
			counters = stats.Stats()
		}
		c.JSON(http.StatusOK, h.Diagnostics(counters.EventsTotal, counters.DroppedTotal))
	})

	r.POST("/join", func(c *gin.Context) {
		c.JSON(http.StatusOK, h.Join())
	})

	r.GET("/ws", func(c *gin.Context) {
		h.serveWS(c)
	})
}

func (h *Hub) serveWS(c *gin.Context) {
	clientID := c.Query("id")
	if clientID == "" {
		c.String(http.StatusBadRequest, "missing id")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sub, ok := h.Subscribe(clientID, conn)
	if !ok {
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown client")
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}

	h.readLoop(clientID, sub)
}

// readLoop consumes client messages until the connection drops. It runs on
// the request goroutine.
func (h *Hub) readLoop(clientID string, sub *subscriber) {
	conn := sub.conn
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.Disconnect(clientID, "read failed")
			return
		}

		var msg protocol.ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.publisher.Publish(context.Background(), logging.Event{
				Type:     "net.malformed_message",
				Severity: logging.SeverityWarn,
				Category: logging.CategoryLifecycle,
				Actor:    logging.EntityRef{ID: clientID, Kind: logging.EntityKindClient},
			})
			continue
		}

		switch msg.Type {
		case "input":
			h.UpdateInput(clientID, msg.TargetX, msg.TargetY, msg.HasTarget, msg.Split)
		case "heartbeat":
			now := time.Now()
			rtt, ok := h.UpdateHeartbeat(clientID, now, msg.SentAt)
			if !ok {
				continue
			}
			ack := protocol.HeartbeatAck{
				Type:       "heartbeat",
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
				RTTMillis:  rtt.Milliseconds(),
			}
			data, err := json.Marshal(ack)
			if err != nil {
				continue
			}
			sub.mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			writeErr := conn.WriteMessage(websocket.TextMessage, data)
			sub.mu.Unlock()
			if writeErr != nil {
				h.Disconnect(clientID, "write failed")
				return
			}
		}
	}
}
