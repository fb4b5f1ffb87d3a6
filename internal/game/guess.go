package game

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
)

const (
	closeGuessDistance  = 2
	closeGuessMinLength = 4
)

// =============================================================================
// GUESS HANDLING
// =============================================================================

// Guess evaluates a chat line against the active word. Guesses from the drawer or
// from players who already scored are relayed as chat without evaluation.
func (e *Engine) Guess(roomId, playerId, text string) {
	room := e.lockRoom(roomId)
	if room == nil {
		return
	}
	defer room.Mu.Unlock()

	player := room.FindPlayer(playerId)
	if player == nil {
		return
	}
	if room.Phase != internal.PhaseDrawing || room.CurrentWord == nil {
		log.Debug().Str("room", room.Id).Str("player", playerId).Msg("[Guess] no active word, dropped")
		return
	}

	if room.IsDrawer(playerId) || player.HasGuessed {
		e.chat(room, player, text)
		return
	}

	guess := normalize(text)
	target := normalize(room.CurrentWord.Text)
	if guess != target {
		e.chat(room, player, text)
		if isClose(guess, target) {
			e.sendTo(playerId, internal.EventCloseGuess, text)
		}
		return
	}

	points := Points(room.TimeLeft, room.MaxTime)
	room.MarkGuessed(player)
	player.Score += points
	player.CorrectGuesses++
	e.leaderboard.Record(player.Name, points)

	log.Info().
		Str("room", room.Id).
		Str("player", player.Name).
		Int("points", points).
		Int("timeLeft", room.TimeLeft).
		Msg("[Guess] correct guess")

	e.broadcast(room, internal.EventCorrectGuess, internal.CorrectGuessData{Player: player.Name, Points: points})
	e.broadcastPlayers(room)
	e.playSound(room, internal.SoundCorrect)

	if room.AllGuessed() {
		e.endRound(room)
	}
}

func (e *Engine) chat(room *internal.Room, player *internal.Player, text string) {
	e.broadcast(room, internal.EventMessage, internal.ChatData{Player: player.Name, Message: text})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isClose reports a near miss on a word long enough that it does not give the answer away.
func isClose(guess, target string) bool {
	if guess == "" || utf8.RuneCountInString(target) < closeGuessMinLength {
		return false
	}
	return levenshtein.ComputeDistance(guess, target) <= closeGuessDistance
}
