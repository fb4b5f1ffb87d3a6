package game

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
)

// =============================================================================
// GAME FLOW - START, ROUNDS, END
// =============================================================================

// maybeScheduleStart moves a lobby with enough players into the countdown.
// Callers hold room.Mu.
func (e *Engine) maybeScheduleStart(room *internal.Room) {
	if room.Phase != internal.PhaseLobby || len(room.Players) < internal.MinPlayersToStart {
		return
	}
	if err := room.Transition(internal.PhaseCountdown); err != nil {
		log.Error().Err(err).Str("room", room.Id).Msg("[maybeScheduleStart] transition failed")
		return
	}
	log.Debug().Str("room", room.Id).Dur("delay", e.cfg.StartDelay).Msg("[maybeScheduleStart] game start scheduled")
	e.schedule(room, e.cfg.StartDelay, "start", e.startGame)
}

// startGame runs when the countdown expires. Preconditions are checked again here
// since players may have left during the grace period.
func (e *Engine) startGame(room *internal.Room) {
	if room.Phase != internal.PhaseCountdown || room.GameStarted() {
		return
	}
	if len(room.Players) < internal.MinPlayersToStart {
		log.Info().Str("room", room.Id).Msg("[startGame] not enough players, back to lobby")
		if err := room.Transition(internal.PhaseLobby); err != nil {
			log.Error().Err(err).Str("room", room.Id).Msg("[startGame] transition failed")
		}
		return
	}

	room.CurrentRound = 1
	room.CurrentDrawerIndex = 0
	room.ResetGuesses()
	e.stats.GameStarted()

	log.Info().
		Str("room", room.Id).
		Int("players", len(room.Players)).
		Int("rounds", room.TotalRounds).
		Msg("[startGame] game starting")

	e.broadcast(room, internal.EventGameStart, internal.GameStartData{Rounds: room.TotalRounds})
	e.playSound(room, internal.SoundGameStart)

	e.schedule(room, e.cfg.FirstRoundDelay, "setupRound", e.setupRound)
}

// setupRound offers the current drawer a fresh set of word choices.
func (e *Engine) setupRound(room *internal.Room) {
	if err := room.Transition(internal.PhaseWordSelection); err != nil {
		log.Error().Err(err).Str("room", room.Id).Msg("[setupRound] transition failed")
		return
	}

	for _, p := range room.Players {
		p.ResetRoundState()
	}
	room.ResetGuesses()

	drawer := room.CurrentDrawer()
	if drawer == nil {
		log.Error().Str("room", room.Id).Msg("[setupRound] no drawer")
		e.endGame(room)
		return
	}
	drawer.IsDrawing = true
	drawer.TimesDrawn++

	room.CurrentWord = nil
	room.WordChoices = e.lexicon.Sample(room.Difficulty, room.CustomWords, internal.WordChoiceCount)
	room.TimeLeft = room.MaxTime

	log.Info().
		Str("room", room.Id).
		Int("round", room.CurrentRound).
		Str("drawer", drawer.Name).
		Msg("[setupRound] round starting")

	e.broadcast(room, internal.EventNewRound, internal.NewRoundData{
		Round:       room.CurrentRound,
		TotalRounds: room.TotalRounds,
		Drawer:      drawer.Name,
		DrawerId:    drawer.Id,
	})
	e.broadcastPlayers(room)
	e.sendTo(drawer.Id, internal.EventChooseWord, room.WordChoices)

	drawerId := drawer.Id
	e.schedule(room, e.cfg.WordChoiceTimeout, "wordChoiceTimeout", func(room *internal.Room) {
		log.Info().Str("room", room.Id).Str("player", drawerId).Msg("[setupRound] drawer did not choose, picking first word")
		e.chooseWord(room, drawerId, 0)
	})
}

// ChooseWord sets the round's word. Requests from anyone but the drawer, or
// after a word is set, are ignored.
func (e *Engine) ChooseWord(roomId, playerId string, index int) {
	room := e.lockRoom(roomId)
	if room == nil {
		return
	}
	defer room.Mu.Unlock()
	e.chooseWord(room, playerId, index)
}

func (e *Engine) chooseWord(room *internal.Room, playerId string, index int) {
	if room.Phase != internal.PhaseWordSelection || !room.IsDrawer(playerId) {
		log.Debug().Str("room", room.Id).Str("player", playerId).Str("phase", string(room.Phase)).Msg("[chooseWord] ignored")
		return
	}
	if index < 0 || index >= len(room.WordChoices) {
		log.Debug().Str("room", room.Id).Int("index", index).Msg("[chooseWord] index out of range")
		return
	}

	word := room.WordChoices[index]
	room.CurrentWord = &word
	room.WordChoices = nil
	room.StopPending()
	if err := room.Transition(internal.PhaseDrawing); err != nil {
		log.Error().Err(err).Str("room", room.Id).Msg("[chooseWord] transition failed")
		return
	}
	room.TimeLeft = room.MaxTime

	log.Info().Str("room", room.Id).Str("player", playerId).Str("word", word.Text).Msg("[chooseWord] word chosen")

	e.broadcast(room, internal.EventStartDrawing, internal.StartDrawingData{
		WordDisplay: room.MaskedWord(),
		Time:        room.TimeLeft,
		WordLength:  utf8.RuneCountInString(word.Text),
	})
	e.broadcastPlayers(room)
	e.playSound(room, internal.SoundStart)

	e.schedule(room, e.cfg.TickInterval, "tick", e.tick)
}

// endRound reveals the word and either schedules the next round or ends the game.
// It is reached by timeout, by everyone guessing, or by the drawer leaving.
func (e *Engine) endRound(room *internal.Room) {
	room.StopPending()

	var word string
	if room.CurrentWord != nil {
		word = room.CurrentWord.Text
	}
	if err := room.Transition(internal.PhaseRoundEnd); err != nil {
		log.Error().Err(err).Str("room", room.Id).Msg("[endRound] transition failed")
		return
	}
	if d := room.CurrentDrawer(); d != nil {
		d.IsDrawing = false
	}

	log.Info().Str("room", room.Id).Int("round", room.CurrentRound).Str("word", word).Msg("[endRound] round over")

	e.broadcast(room, internal.EventRoundEnd, internal.RoundEndData{Word: word, Round: room.CurrentRound})
	e.playSound(room, internal.SoundRoundEnd)

	room.CurrentWord = nil
	room.WordChoices = nil

	if room.AdvanceTurn() {
		e.schedule(room, e.cfg.NextRoundDelay, "setupRound", e.setupRound)
		return
	}
	e.endGame(room)
}

// endGame announces the winner and returns the room to the lobby. Scores are kept.
func (e *Engine) endGame(room *internal.Room) {
	room.StopPending()
	if err := room.Transition(internal.PhaseGameEnd); err != nil {
		log.Error().Err(err).Str("room", room.Id).Msg("[endGame] transition failed")
		return
	}

	for _, p := range room.Players {
		p.IsDrawing = false
	}
	room.CurrentWord = nil
	room.WordChoices = nil

	result := finalResult(room, min(room.CurrentRound, room.TotalRounds))

	log.Info().
		Str("room", room.Id).
		Str("winner", result.Winner.Name).
		Int("score", result.Winner.Score).
		Msg("[endGame] game over")

	e.broadcast(room, internal.EventGameEnd, internal.GameEndData{
		Winner:  result.Winner,
		Players: result.Standings,
	})
	e.playSound(room, internal.SoundWin)

	if err := room.Transition(internal.PhaseLobby); err != nil {
		log.Error().Err(err).Str("room", room.Id).Msg("[endGame] transition failed")
	}
	room.CurrentRound = 0
	room.CurrentDrawerIndex = 0
	room.ResetGuesses()
	e.stats.GameCompleted()

	e.saveResult(result)
}

func (e *Engine) saveResult(result internal.GameResult) {
	e.archiving.Add(1)
	go func() {
		defer e.archiving.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.ArchiveTimeout)
		defer cancel()
		if err := e.archive.SaveGame(ctx, result); err != nil {
			log.Error().Err(err).Str("room", result.RoomId).Msg("[saveResult] archive write failed")
		}
	}()
}
