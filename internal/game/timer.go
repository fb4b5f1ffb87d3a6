package game

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
)

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

// schedule replaces the room's pending task with task, run after d under the room
// lock. The task is dropped if the room has changed phase or been closed by then,
// which covers timers that fired while a cancelling handler held the lock.
// Callers hold room.Mu.
func (e *Engine) schedule(room *internal.Room, d time.Duration, name string, task func(*internal.Room)) {
	room.StopPending()
	epoch := room.Epoch
	roomId := room.Id

	room.Pending = e.clock.AfterFunc(d, func() {
		room.Mu.Lock()
		defer room.Mu.Unlock()

		if room.Closed || room.Epoch != epoch {
			log.Debug().Str("room", roomId).Str("task", name).Msg("[schedule] stale task discarded")
			return
		}
		room.Pending = nil
		task(room)
	})
}

// tick runs once per TickInterval while the room is drawing.
func (e *Engine) tick(room *internal.Room) {
	if room.Phase != internal.PhaseDrawing {
		return
	}

	room.TimeLeft--
	e.broadcast(room, internal.EventTimer, room.TimeLeft)

	if (room.TimeLeft == 60 || room.TimeLeft == 30) && room.CurrentWord != nil {
		e.broadcast(room, internal.EventShowHint, room.CurrentWord.Hint)
	}

	if room.TimeLeft <= 0 {
		log.Info().Str("room", room.Id).Int("round", room.CurrentRound).Msg("[tick] time is up")
		e.endRound(room)
		return
	}
	e.schedule(room, e.cfg.TickInterval, "tick", e.tick)
}
