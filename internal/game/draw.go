package game

import (
	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
)

// =============================================================================
// DRAWING RELAY
// =============================================================================

// Stroke relays a startDraw or drawing event from the drawer to everyone else.
func (e *Engine) Stroke(roomId, playerId string, t internal.StrokeType, p internal.StrokePoint) {
	room := e.lockRoom(roomId)
	if room == nil {
		return
	}
	defer room.Mu.Unlock()

	if !e.canDraw(room, playerId) {
		return
	}
	e.broadcastExcept(room, playerId, internal.EventDraw, internal.NewDrawData(t, &p))
}

// StopStroke is passed through from any member so a stroke never stays open
// on other clients after the drawer changes.
func (e *Engine) StopStroke(roomId, playerId string) {
	room := e.lockRoom(roomId)
	if room == nil {
		return
	}
	defer room.Mu.Unlock()

	if room.FindPlayer(playerId) == nil {
		return
	}
	e.broadcastExcept(room, playerId, internal.EventDraw, internal.NewDrawData(internal.StrokeStop, nil))
}

func (e *Engine) Fill(roomId, playerId, color string) {
	room := e.lockRoom(roomId)
	if room == nil {
		return
	}
	defer room.Mu.Unlock()

	if !e.canDraw(room, playerId) {
		return
	}
	e.broadcastExcept(room, playerId, internal.EventFill, color)
}

// ClearCanvas is sent to the whole room, drawer included.
func (e *Engine) ClearCanvas(roomId, playerId string) {
	room := e.lockRoom(roomId)
	if room == nil {
		return
	}
	defer room.Mu.Unlock()

	if !room.RoundActive() || !room.IsDrawer(playerId) {
		log.Debug().Str("room", roomId).Str("player", playerId).Msg("[ClearCanvas] not the drawer")
		return
	}
	e.broadcast(room, internal.EventClearCanvas, nil)
}

func (e *Engine) canDraw(room *internal.Room, playerId string) bool {
	if room.Phase == internal.PhaseDrawing && room.IsDrawer(playerId) {
		return true
	}
	log.Debug().Str("room", room.Id).Str("player", playerId).Str("phase", string(room.Phase)).Msg("[canDraw] draw event ignored")
	return false
}
