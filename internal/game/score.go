package game

import (
	"time"

	"github.com/scythe504/skribblr-party/internal"
)

// Points awards a correct guess in proportion to the time remaining, 0 to 100.
func Points(timeLeft, maxTime int) int {
	if maxTime <= 0 || timeLeft <= 0 {
		return 0
	}
	return min(timeLeft*100/maxTime, 100)
}

// finalResult snapshots a finished game. Callers hold room.Mu.
func finalResult(room *internal.Room, rounds int) internal.GameResult {
	var winner internal.PlayerSnapshot
	if w := room.Winner(); w != nil {
		winner = w.Snapshot()
	}
	return internal.GameResult{
		RoomId:     room.Id,
		Difficulty: room.Difficulty,
		Rounds:     rounds,
		Winner:     winner,
		Standings:  room.Standings(),
		EndedAt:    time.Now().UTC(),
	}
}
