// Package status exposes a small local observation endpoint: a WebSocket
// feed of emitted notifications and a JSON health summary. It is forward
// notification only — nothing is buffered or queryable after the fact.
package status

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Kind classifies a published notice.
type Kind string

const (
	KindJoin   Kind = "join"
	KindLeave  Kind = "leave"
	KindEvent  Kind = "event"
	KindHealth Kind = "health"
)

// Notice is one watcher notification pushed to connected clients.
type Notice struct {
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Broadcaster fans published notices out to all connected clients. A nil
// *Broadcaster is valid and drops everything, so callers don't need to
// branch on whether the status endpoint is enabled.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[*client]bool)}
}

func (b *Broadcaster) AddClient(conn *websocket.Conn) *client {
	c := newClient(conn)
	b.mu.Lock()
	b.clients[c] = true
	b.mu.Unlock()
	return c
}

func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		c.close()
	}
	b.mu.Unlock()
}

// Publish sends a notice to every connected client. Clients that cannot
// keep up are disconnected rather than allowed to stall the watch loop.
func (b *Broadcaster) Publish(kind Kind, text string) {
	if b == nil {
		return
	}

	data, err := json.Marshal(Notice{Kind: kind, Text: text, Time: time.Now()})
	if err != nil {
		log.Printf("[status] marshal error: %v", err)
		return
	}

	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			log.Printf("[status] client too slow, disconnecting")
			b.RemoveClient(c)
		}
	}
}

func (b *Broadcaster) ClientCount() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
