// Package ws broadcasts world change events to connected viewers. Every
// message is a JSON object with a type and timestamp plus the event payload.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/websocket"
)

// writeTimeout bounds how long one client may stall a broadcast before it
// is dropped.
const writeTimeout = 5 * time.Second

type Hub struct {
	upgrader websocket.HertzUpgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.HertzUpgrader{
			CheckOrigin: func(_ *app.RequestContext) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler upgrades the request and parks the connection until the client
// hangs up. Clients only receive; anything they send is discarded.
func (h *Hub) Handler() app.HandlerFunc {
	return func(_ context.Context, ctx *app.RequestContext) {
		err := h.upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
			h.add(conn)
			defer h.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		})
		if err != nil {
			log.Printf("ws upgrade failed: %v", err)
		}
	}
}

// Broadcast sends the event to every connected client. Each write carries a
// deadline so a stalled client cannot block the caller; connections that fail
// or time out are dropped.
func (h *Hub) Broadcast(eventType string, payload map[string]any) {
	event := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		event[k] = v
	}
	event["type"] = eventType
	event["timestamp"] = time.Now().Format(time.RFC3339)

	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws marshal failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
}
