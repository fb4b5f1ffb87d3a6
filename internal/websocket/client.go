package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
	"github.com/scythe504/skribblr-party/internal/game"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = time.Minute
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 8 * 1024
	sendBuffer     = 256
)

// Per-connection intent limits. Excess intents are dropped.
var (
	guessRate  = rate.Limit(2)
	guessBurst = 5
	drawRate   = rate.Limit(60)
	drawBurst  = 120
)

// Client is one websocket connection and, once it has joined, one player.
type Client struct {
	id      string
	conn    *websocket.Conn
	gateway *Gateway

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	// roomId is only touched by the read pump.
	roomId string

	guessLimiter *rate.Limiter
	drawLimiter  *rate.Limiter
}

func newClient(id string, conn *websocket.Conn, g *Gateway) *Client {
	return &Client{
		id:           id,
		conn:         conn,
		gateway:      g,
		send:         make(chan []byte, sendBuffer),
		done:         make(chan struct{}),
		guessLimiter: rate.NewLimiter(guessRate, guessBurst),
		drawLimiter:  rate.NewLimiter(drawRate, drawBurst),
	}
}

// enqueue never blocks; a client that cannot keep up loses messages.
func (c *Client) enqueue(data []byte) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
		log.Warn().Str("player", c.id).Msg("[Client.enqueue] send buffer full, dropping message")
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

// readPump decodes intents until the connection fails, then leaves the room.
func (c *Client) readPump() {
	defer func() {
		if c.roomId != "" {
			c.gateway.engine.Leave(c.roomId, c.id)
		}
		c.gateway.hub.unregister(c)
		c.shutdown()
		c.conn.Close()
		log.Info().Str("player", c.id).Msg("[readPump] disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("player", c.id).Msg("[readPump] read error")
			}
			return
		}

		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Debug().Err(err).Str("player", c.id).Msg("[readPump] malformed message")
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.shutdown()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

var errBadPayload = errors.New("bad payload")

func decode[T any](data json.RawMessage) (T, error) {
	var v T
	if len(data) == 0 {
		return v, errBadPayload
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// dispatch routes one intent to the engine.
func (c *Client) dispatch(msg internal.Message[json.RawMessage]) {
	engine := c.gateway.engine

	switch msg.Type {
	case internal.IntentCreateRoom:
		data, err := decode[internal.CreateRoomData](msg.Data)
		if err != nil {
			c.invalid(msg.Type, err)
			return
		}
		c.leaveRoom()
		roomId, err := engine.CreateRoom(c.id, data)
		c.enterRoom(roomId, err)

	case internal.IntentJoinRoom:
		data, err := decode[internal.JoinRoomData](msg.Data)
		if err != nil {
			c.invalid(msg.Type, err)
			return
		}
		if c.roomId != "" && data.RoomId == c.roomId {
			c.sendError(game.ErrAlreadyInRoom)
			return
		}
		c.leaveRoom()
		err = engine.JoinRoom(c.id, data)
		c.enterRoom(data.RoomId, err)

	case internal.IntentQuickJoin:
		data, _ := decode[internal.QuickJoinData](msg.Data)
		c.leaveRoom()
		roomId, err := engine.QuickJoin(c.id, data)
		c.enterRoom(roomId, err)

	case internal.IntentGetRooms:
		c.reply(internal.EventRoomsList, engine.ListRooms())

	case internal.IntentGetLeaderboard:
		c.reply(internal.EventLeaderboard, engine.Leaderboard())

	case internal.IntentWordChosen:
		index, err := decode[int](msg.Data)
		if err != nil {
			c.invalid(msg.Type, err)
			return
		}
		engine.ChooseWord(c.roomId, c.id, index)

	case internal.IntentStartDraw, internal.IntentDrawing:
		if !c.drawLimiter.Allow() {
			return
		}
		point, err := decode[internal.StrokePoint](msg.Data)
		if err != nil {
			c.invalid(msg.Type, err)
			return
		}
		stroke := internal.StrokeDraw
		if msg.Type == internal.IntentStartDraw {
			stroke = internal.StrokeStart
		}
		engine.Stroke(c.roomId, c.id, stroke, point)

	case internal.IntentStopDraw:
		engine.StopStroke(c.roomId, c.id)

	case internal.IntentClear:
		engine.ClearCanvas(c.roomId, c.id)

	case internal.IntentFill:
		if !c.drawLimiter.Allow() {
			return
		}
		color, err := decode[string](msg.Data)
		if err != nil {
			c.invalid(msg.Type, err)
			return
		}
		engine.Fill(c.roomId, c.id, color)

	case internal.IntentGuess:
		if !c.guessLimiter.Allow() {
			log.Debug().Str("player", c.id).Msg("[dispatch] guess rate limited")
			return
		}
		text, err := decode[string](msg.Data)
		if err != nil {
			c.invalid(msg.Type, err)
			return
		}
		engine.Guess(c.roomId, c.id, text)

	default:
		log.Debug().Str("player", c.id).Str("type", msg.Type).Msg("[dispatch] unknown intent")
	}
}

func (c *Client) leaveRoom() {
	if c.roomId == "" {
		return
	}
	c.gateway.engine.Leave(c.roomId, c.id)
	c.roomId = ""
}

func (c *Client) enterRoom(roomId string, err error) {
	if err != nil {
		c.sendError(err)
		return
	}
	c.roomId = roomId
}

func (c *Client) reply(msgType string, data any) {
	c.gateway.hub.Send(c.id, internal.NewMessage(msgType, data))
}

func (c *Client) sendError(err error) {
	log.Debug().Err(err).Str("player", c.id).Msg("[dispatch] request rejected")
	c.reply(internal.EventError, game.PublicMessage(err))
}

func (c *Client) invalid(msgType string, err error) {
	log.Debug().Err(err).Str("player", c.id).Str("type", msgType).Msg("[dispatch] bad payload")
}
