// Package stream pushes live price updates to connected dashboard
// clients over WebSocket, so the frontend can supplement its polling
// with immediate updates.
package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced at the API layer; the hub accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Envelope is the wire format for every broadcast message.
type Envelope struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
	TS      string          `json:"ts"`
}

// ClientCounter is notified as clients connect and disconnect.
type ClientCounter interface {
	Inc()
	Dec()
}

// Hub fans broadcast messages out to all connected clients. Slow
// clients are dropped rather than allowed to block the broadcast path.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
	counter ClientCounter
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(counter ClientCounter) *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		counter: counter,
	}
}

// ServeHTTP upgrades the connection and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("[STREAM] Upgrade failed: %v\n", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	if h.counter != nil {
		h.counter.Inc()
	}
	fmt.Printf("[STREAM] Client connected (%d total)\n", n)

	go c.writePump()
	go h.readPump(c)
}

// Broadcast sends a channel-tagged payload to every connected client.
func (h *Hub) Broadcast(channel string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("[STREAM] Marshal broadcast: %v\n", err)
		return
	}
	msg, err := json.Marshal(Envelope{
		Channel: channel,
		Data:    data,
		TS:      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow client: drop the message, the poller will catch it up.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		if h.counter != nil {
			h.counter.Dec()
		}
	}
	h.mu.Unlock()
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Clients do not send application messages; this loop only
		// services control frames and detects disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
