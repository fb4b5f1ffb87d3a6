package websocket

import (
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal/game"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

// Gateway upgrades HTTP requests to game connections and feeds their intents to the engine.
type Gateway struct {
	engine   *game.Engine
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewGateway returns a Gateway accepting browser origins in allowedOrigins; "*" allows any.
func NewGateway(engine *game.Engine, hub *Hub, allowedOrigins []string) *Gateway {
	return &Gateway{
		engine: engine,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 || slices.Contains(allowed, "*") {
			return true
		}
		return slices.ContainsFunc(allowed, func(a string) bool {
			return strings.EqualFold(strings.TrimSpace(a), origin)
		})
	}
}

// HandleWebSocket upgrades the connection, registers it with the hub and
// starts its pumps. The connection joins no room until it asks to.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("[HandleWebSocket] upgrade failed")
		return
	}

	c := newClient(uuid.NewString(), conn, g)
	g.hub.register(c)
	log.Info().Str("player", c.id).Str("remote", r.RemoteAddr).Msg("[HandleWebSocket] connected")

	go c.writePump()
	go c.readPump()
}
