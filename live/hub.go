// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType defines the type of websocket message
type MessageType string

const (
	MsgResultsUpdate MessageType = "results_update"
	MsgStoreReset    MessageType = "store_reset"
)

// sendBuffer is the per-subscriber queue length. Slow subscribers drop messages.
const sendBuffer = 16

// Message is the websocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one results subscriber.
type Connection struct {
	Send chan []byte
}

func NewConnection() *Connection {
	return &Connection{Send: make(chan []byte, sendBuffer)}
}

// delivery is a message for a single subscriber.
type delivery struct {
	conn *Connection
	data []byte
}

// Hub fans results updates out to every subscriber.
type Hub struct {
	conns map[*Connection]bool
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	direct     chan delivery
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:      make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan delivery),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every subscriber.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for conn := range h.conns {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = true
			n := len(h.conns)
			h.mu.Unlock()
			slog.Debug("results subscriber connected", "subscribers", n)

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.conns[conn] {
				delete(h.conns, conn)
				close(conn.Send)
			}
			n := len(h.conns)
			h.mu.Unlock()
			slog.Debug("results subscriber disconnected", "subscribers", n)

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case d := <-h.direct:
			h.mu.RLock()
			if h.conns[d.conn] {
				select {
				case d.conn.Send <- d.data:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a subscriber. It blocks until Run accepts it. After Run
// has returned the subscriber is closed immediately.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a subscriber and closes its Send channel.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// SendTo queues data for one registered subscriber. Subscribers that have
// left, or whose queue is full, do not get it.
func (h *Hub) SendTo(conn *Connection, data []byte) {
	select {
	case h.direct <- delivery{conn: conn, data: data}:
	case <-h.done:
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast queues a message for every subscriber. It never blocks the
// caller; when the queue is full the update is dropped.
func (h *Hub) Broadcast(msgType MessageType, payload any) {
	data, err := Encode(msgType, payload)
	if err != nil {
		slog.Error("failed to encode live message", "type", msgType, "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		slog.Warn("live broadcast queue full, dropping update", "type", msgType)
	}
}

// Encode wraps payload in the websocket envelope.
func Encode(msgType MessageType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: raw})
}
