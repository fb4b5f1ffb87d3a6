package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
)

// Hub tracks live connections by player id and delivers engine messages to them.
// Send is called with room locks held; it only takes the hub lock and never blocks.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if h.clients[c.id] == c {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send implements game.Sender.
func (h *Hub) Send(playerId string, msg internal.Envelope) {
	h.mu.RLock()
	c, ok := h.clients[playerId]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("type", msg.Type).Msg("[Hub.Send] marshal failed")
		return
	}
	c.enqueue(data)
}
