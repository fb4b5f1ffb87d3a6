package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
)

const roomIdAttempts = 5

// =============================================================================
// LOBBY - CREATE, JOIN, LEAVE
// =============================================================================

// CreateRoom builds a room from the requested settings with the creator as its
// only player and returns the new room id.
func (e *Engine) CreateRoom(playerId string, data internal.CreateRoomData) (string, error) {
	var hash string
	if data.Password != "" {
		var err error
		if hash, err = e.hasher.Hash(data.Password); err != nil {
			return "", fmt.Errorf("hash room password: %w", err)
		}
	}

	settings := internal.RoomSettings{
		MaxPlayers:   data.MaxPlayers,
		Rounds:       data.Rounds,
		TimePerRound: data.TimePerRound,
		CustomWords:  data.CustomWords,
	}
	player := internal.NewPlayer(playerId, data.PlayerName, data.Avatar)
	room, err := e.openRoom(data.Difficulty, settings, hash, player)
	if err != nil {
		return "", err
	}
	defer room.Mu.Unlock()

	log.Info().
		Str("room", room.Id).
		Str("player", player.Name).
		Int("rounds", room.TotalRounds).
		Int("timePerRound", room.MaxTime).
		Msg("[CreateRoom] room created")
	return room.Id, nil
}

// JoinRoom adds a player to an existing room after checking its password and capacity.
func (e *Engine) JoinRoom(playerId string, data internal.JoinRoomData) error {
	room, ok := e.registry.Get(data.RoomId)
	if !ok {
		return ErrRoomNotFound
	}

	// PasswordHash is fixed at creation, so the slow hash check runs unlocked.
	if room.HasPassword() {
		match, err := e.hasher.Verify(data.Password, room.PasswordHash)
		if err != nil {
			return fmt.Errorf("verify room password: %w", err)
		}
		if !match {
			log.Debug().Str("room", room.Id).Str("player", playerId).Msg("[JoinRoom] wrong password")
			return ErrWrongPassword
		}
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	switch {
	case room.Closed:
		return ErrRoomNotFound
	case room.FindPlayer(playerId) != nil:
		return ErrAlreadyInRoom
	case room.IsFull():
		return ErrRoomFull
	}

	player := internal.NewPlayer(playerId, data.PlayerName, data.Avatar)
	room.AddPlayer(player)
	e.playerJoined(room, player)
	return nil
}

// QuickJoin places the player in the first open public room, or opens a new
// medium room with default settings when none is available.
func (e *Engine) QuickJoin(playerId string, data internal.QuickJoinData) (string, error) {
	player := internal.NewPlayer(playerId, data.PlayerName, data.Avatar)

	for attempt := 0; attempt < 3; attempt++ {
		room := e.registry.FindJoinable()
		if room == nil {
			break
		}
		room.Mu.Lock()
		if !room.Joinable() || room.FindPlayer(playerId) != nil {
			room.Mu.Unlock()
			continue
		}
		room.AddPlayer(player)
		e.playerJoined(room, player)
		room.Mu.Unlock()
		return room.Id, nil
	}

	room, err := e.openRoom(internal.DifficultyMedium, internal.RoomSettings{}, "", player)
	if err != nil {
		return "", err
	}
	defer room.Mu.Unlock()

	log.Info().Str("room", room.Id).Str("player", player.Name).Msg("[QuickJoin] no open room, created one")
	return room.Id, nil
}

// openRoom registers a new room holding founder and returns it still locked,
// so nobody else can join before the founder has been told about it.
func (e *Engine) openRoom(difficulty internal.WordDifficulty, settings internal.RoomSettings, hash string, founder *internal.Player) (*internal.Room, error) {
	for attempt := 0; attempt < roomIdAttempts; attempt++ {
		room := internal.NewRoom(e.newRoomId(), difficulty, settings, hash)
		room.AddPlayer(founder)

		room.Mu.Lock()
		if !e.registry.Insert(room) {
			room.Mu.Unlock()
			log.Warn().Str("room", room.Id).Msg("[openRoom] room id collision, retrying")
			continue
		}
		e.stats.SawPlayer(founder.Name)
		e.sendTo(founder.Id, internal.EventJoinedRoom, internal.JoinedRoomData{
			RoomId:   room.Id,
			PlayerId: founder.Id,
			Settings: room.Settings,
		})
		e.broadcastPlayers(room)
		return room, nil
	}
	return nil, errRoomIdExhausted
}

// Callers hold room.Mu.
func (e *Engine) playerJoined(room *internal.Room, player *internal.Player) {
	e.stats.SawPlayer(player.Name)

	e.sendTo(player.Id, internal.EventJoinedRoom, internal.JoinedRoomData{
		RoomId:   room.Id,
		PlayerId: player.Id,
		Settings: room.Settings,
	})
	e.broadcastExcept(room, player.Id, internal.EventPlayerJoined, player.Snapshot())
	e.broadcastPlayers(room)
	e.playSound(room, internal.SoundJoin)

	log.Info().
		Str("room", room.Id).
		Str("player", player.Name).
		Int("players", len(room.Players)).
		Msg("[JoinRoom] player joined")

	e.maybeScheduleStart(room)
}

// Leave removes a player. An emptied room is reclaimed at once; otherwise the
// round or game is ended when the departure makes it unplayable.
func (e *Engine) Leave(roomId, playerId string) {
	room := e.lockRoom(roomId)
	if room == nil {
		return
	}

	removed, wasDrawer := room.RemovePlayer(playerId)
	if removed == nil {
		room.Mu.Unlock()
		return
	}

	if len(room.Players) == 0 {
		room.Closed = true
		room.StopPending()
		room.Mu.Unlock()
		e.registry.Remove(roomId)
		log.Info().Str("room", roomId).Msg("[Leave] room empty, removed")
		return
	}
	defer room.Mu.Unlock()

	log.Info().
		Str("room", roomId).
		Str("player", removed.Name).
		Bool("wasDrawer", wasDrawer).
		Str("phase", string(room.Phase)).
		Msg("[Leave] player left")

	e.broadcast(room, internal.EventPlayerLeft, removed.Snapshot())
	e.broadcastPlayers(room)

	switch {
	case room.GameStarted() && len(room.Players) < internal.MinPlayersToStart:
		e.endGame(room)
	case wasDrawer && room.RoundActive():
		e.endRound(room)
	case room.Phase == internal.PhaseDrawing && room.AllGuessed():
		e.endRound(room)
	}
}
