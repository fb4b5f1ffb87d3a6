package internal

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

func NewRoom(id string, difficulty WordDifficulty, settings RoomSettings, passwordHash string) *Room {
	if settings.MaxPlayers <= 0 {
		settings.MaxPlayers = DefaultMaxPlayers
	}
	settings.MaxPlayers = min(max(settings.MaxPlayers, MinPlayersToStart), MaxPlayersCap)
	if settings.Rounds <= 0 {
		settings.Rounds = DefaultRounds
	}
	settings.Rounds = min(settings.Rounds, MaxRoundsCap)
	if settings.TimePerRound <= 0 {
		settings.TimePerRound = DefaultTimePerRound
	}
	settings.TimePerRound = min(max(settings.TimePerRound, MinTimePerRound), MaxTimePerRound)
	settings.HasPassword = passwordHash != ""

	custom := make([]string, 0, len(settings.CustomWords))
	for _, w := range settings.CustomWords {
		if w = strings.TrimSpace(w); w != "" {
			custom = append(custom, w)
		}
	}
	settings.CustomWords = custom

	if difficulty == "" {
		difficulty = DifficultyMedium
	}

	return &Room{
		Id:               id,
		Difficulty:       difficulty,
		Settings:         settings,
		Players:          make([]*Player, 0, settings.MaxPlayers),
		MaxPlayers:       settings.MaxPlayers,
		Phase:            PhaseLobby,
		TotalRounds:      settings.Rounds,
		TimeLeft:         settings.TimePerRound,
		MaxTime:          settings.TimePerRound,
		GuessedPlayerIds: make(map[string]struct{}),
		PasswordHash:     passwordHash,
		CustomWords:      custom,
		CreatedAt:        time.Now(),
	}
}

// Transition moves the room to phase `to`, failing if the current phase is not an allowed source.
func (r *Room) Transition(to GamePhase) error {
	if !slices.Contains(transitions[to], r.Phase) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Phase, to)
	}
	r.Phase = to
	r.Epoch++
	return nil
}

func (r *Room) GameStarted() bool {
	return r.CurrentRound > 0
}

func (r *Room) RoundActive() bool {
	return r.Phase == PhaseWordSelection || r.Phase == PhaseDrawing
}

func (r *Room) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

func (r *Room) HasPassword() bool {
	return r.PasswordHash != ""
}

// Joinable reports whether quick-join may place a player here.
func (r *Room) Joinable() bool {
	return !r.Closed && !r.IsFull() && !r.GameStarted() && !r.HasPassword()
}

func (r *Room) AddPlayer(p *Player) bool {
	if r.IsFull() {
		return false
	}
	r.Players = append(r.Players, p)
	return true
}

func (r *Room) PlayerIndex(id string) int {
	return slices.IndexFunc(r.Players, func(p *Player) bool { return p.Id == id })
}

func (r *Room) FindPlayer(id string) *Player {
	if i := r.PlayerIndex(id); i >= 0 {
		return r.Players[i]
	}
	return nil
}

// RemovePlayer compacts the roster and keeps CurrentDrawerIndex pointing at the
// same person. When the active drawer leaves mid-round the index is moved back one
// slot, so the turn advance that ends the round lands on the player who took the slot.
func (r *Room) RemovePlayer(id string) (removed *Player, wasDrawer bool) {
	idx := r.PlayerIndex(id)
	if idx < 0 {
		return nil, false
	}
	removed = r.Players[idx]
	wasDrawer = idx == r.CurrentDrawerIndex
	r.Players = slices.Delete(r.Players, idx, idx+1)
	delete(r.GuessedPlayerIds, id)

	n := len(r.Players)
	if n == 0 {
		r.CurrentDrawerIndex = 0
		return removed, wasDrawer
	}
	switch {
	case idx < r.CurrentDrawerIndex:
		r.CurrentDrawerIndex--
	case wasDrawer && r.RoundActive():
		r.CurrentDrawerIndex = (idx - 1 + n) % n
	}
	r.CurrentDrawerIndex %= n
	return removed, wasDrawer
}

func (r *Room) CurrentDrawer() *Player {
	if r.CurrentDrawerIndex < 0 || r.CurrentDrawerIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.CurrentDrawerIndex]
}

func (r *Room) IsDrawer(playerId string) bool {
	d := r.CurrentDrawer()
	return d != nil && d.Id == playerId
}

// AdvanceTurn moves to the next round and drawer. It returns false once all rounds are consumed.
func (r *Room) AdvanceTurn() bool {
	r.CurrentRound++
	if n := len(r.Players); n > 0 {
		r.CurrentDrawerIndex = (r.CurrentDrawerIndex + 1) % n
	} else {
		r.CurrentDrawerIndex = 0
	}
	r.ResetGuesses()
	return r.CurrentRound <= r.TotalRounds
}

func (r *Room) ResetGuesses() {
	r.GuessedPlayerIds = make(map[string]struct{})
	for _, p := range r.Players {
		p.HasGuessed = false
	}
}

func (r *Room) MarkGuessed(p *Player) {
	p.HasGuessed = true
	r.GuessedPlayerIds[p.Id] = struct{}{}
}

// AllGuessed reports whether every non-drawer has guessed the word.
func (r *Room) AllGuessed() bool {
	return len(r.Players) > 1 && len(r.GuessedPlayerIds) >= len(r.Players)-1
}

// MaskedWord reveals the first and last characters of the active word. Characters
// are separated by a single space and a space in the word widens to a double gap.
func (r *Room) MaskedWord() string {
	if r.CurrentWord == nil {
		return ""
	}
	return MaskWord(r.CurrentWord.Text)
}

func MaskWord(word string) string {
	chars := []rune(word)
	last := len(chars) - 1
	parts := make([]string, 0, len(chars))
	for i, c := range chars {
		switch {
		case c == ' ':
			parts = append(parts, "  ")
		case i == 0 || i == last:
			parts = append(parts, string(c))
		default:
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

func (r *Room) PlayerSnapshots() []PlayerSnapshot {
	out := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.Snapshot())
	}
	return out
}

// Standings returns the roster sorted by descending score, ties kept in turn order.
func (r *Room) Standings() []PlayerSnapshot {
	out := r.PlayerSnapshots()
	slices.SortStableFunc(out, func(a, b PlayerSnapshot) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Winner is the first player in turn order holding the top score.
func (r *Room) Winner() *Player {
	var winner *Player
	for _, p := range r.Players {
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	return winner
}

func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		Id:           r.Id,
		Players:      len(r.Players),
		MaxPlayers:   r.MaxPlayers,
		Difficulty:   r.Difficulty,
		HasPassword:  r.HasPassword(),
		Rounds:       r.TotalRounds,
		TimePerRound: r.MaxTime,
	}
}

// StopPending cancels the room's scheduled task, if any.
func (r *Room) StopPending() {
	if r.Pending != nil {
		r.Pending.Stop()
		r.Pending = nil
	}
}
