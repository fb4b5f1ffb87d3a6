package game

import (
	"context"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
	"github.com/scythe504/skribblr-party/internal/crypto"
	"github.com/scythe504/skribblr-party/internal/utils"
	"github.com/scythe504/skribblr-party/internal/words"
)

// Config holds the engine's fixed delays.
type Config struct {
	StartDelay        time.Duration
	FirstRoundDelay   time.Duration
	NextRoundDelay    time.Duration
	WordChoiceTimeout time.Duration
	TickInterval      time.Duration
	ArchiveTimeout    time.Duration
}

func DefaultConfig() Config {
	return Config{
		StartDelay:        2 * time.Second,
		FirstRoundDelay:   time.Second,
		NextRoundDelay:    5 * time.Second,
		WordChoiceTimeout: 15 * time.Second,
		TickInterval:      time.Second,
		ArchiveTimeout:    5 * time.Second,
	}
}

// withDefaults fills every unset delay from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	c.StartDelay = orDefault(c.StartDelay, d.StartDelay)
	c.FirstRoundDelay = orDefault(c.FirstRoundDelay, d.FirstRoundDelay)
	c.NextRoundDelay = orDefault(c.NextRoundDelay, d.NextRoundDelay)
	c.WordChoiceTimeout = orDefault(c.WordChoiceTimeout, d.WordChoiceTimeout)
	c.TickInterval = orDefault(c.TickInterval, d.TickInterval)
	c.ArchiveTimeout = orDefault(c.ArchiveTimeout, d.ArchiveTimeout)
	return c
}

func orDefault(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

// Sender delivers one message to one player's connection. Implementations must
// not block and must not call back into the engine.
type Sender interface {
	Send(playerId string, msg internal.Envelope)
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) internal.TimerHandle
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) internal.TimerHandle {
	return time.AfterFunc(d, f)
}

// Archive stores completed games. Failures never affect room state.
type Archive interface {
	SaveGame(ctx context.Context, result internal.GameResult) error
}

type nopArchive struct{}

func (nopArchive) SaveGame(context.Context, internal.GameResult) error { return nil }

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

type Options struct {
	Config    Config
	Lexicon   *words.Lexicon
	Sender    Sender
	Scheduler Scheduler
	Archive   Archive
	Hasher    PasswordHasher
	RoomIds   func() string
}

// Engine owns every live room and drives their round state machines.
// All room mutation happens under the room's own lock.
type Engine struct {
	cfg         Config
	registry    *Registry
	leaderboard *Leaderboard
	stats       *Stats
	lexicon     *words.Lexicon
	sender      Sender
	clock       Scheduler
	archive     Archive
	hasher      PasswordHasher
	newRoomId   func() string

	archiving sync.WaitGroup
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		cfg:         opts.Config,
		registry:    NewRegistry(),
		leaderboard: NewLeaderboard(),
		stats:       NewStats(),
		lexicon:     opts.Lexicon,
		sender:      opts.Sender,
		clock:       opts.Scheduler,
		archive:     opts.Archive,
		hasher:      opts.Hasher,
		newRoomId:   opts.RoomIds,
	}
	e.cfg = e.cfg.withDefaults()
	if e.lexicon == nil {
		e.lexicon = words.NewLexicon(nil)
	}
	if e.clock == nil {
		e.clock = realScheduler{}
	}
	if e.archive == nil {
		e.archive = nopArchive{}
	}
	if e.hasher == nil {
		e.hasher = crypto.NewHasher(argon2id.DefaultParams)
	}
	if e.newRoomId == nil {
		e.newRoomId = utils.GenerateRoomCode
	}
	return e
}

func (e *Engine) Registry() *Registry { return e.registry }

// Leaderboard returns the top entries across all rooms.
func (e *Engine) Leaderboard() []internal.LeaderboardEntry {
	return e.leaderboard.Top(LeaderboardSize)
}

func (e *Engine) Stats() internal.StatsSnapshot {
	s := e.stats.Snapshot()
	s.ActiveRooms = e.registry.Len()
	return s
}

// ListRooms returns summaries of rooms that have not started and have space.
func (e *Engine) ListRooms() []internal.RoomSummary {
	return e.registry.List()
}

// Shutdown cancels every room's pending task and waits for archive writes to drain.
func (e *Engine) Shutdown(ctx context.Context) error {
	for _, room := range e.registry.Snapshot() {
		room.Mu.Lock()
		room.StopPending()
		room.Closed = true
		room.Mu.Unlock()
	}

	done := make(chan struct{})
	go func() {
		e.archiving.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info().Msg("[Shutdown] engine stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// =============================================================================
// BROADCASTING
// =============================================================================

// Callers hold room.Mu, which keeps per-room event order intact.
func (e *Engine) broadcast(room *internal.Room, msgType string, data any) {
	msg := internal.NewMessage(msgType, data)
	for _, p := range room.Players {
		e.sender.Send(p.Id, msg)
	}
}

func (e *Engine) broadcastExcept(room *internal.Room, exclude string, msgType string, data any) {
	msg := internal.NewMessage(msgType, data)
	for _, p := range room.Players {
		if p.Id != exclude {
			e.sender.Send(p.Id, msg)
		}
	}
}

func (e *Engine) sendTo(playerId string, msgType string, data any) {
	e.sender.Send(playerId, internal.NewMessage(msgType, data))
}

func (e *Engine) broadcastPlayers(room *internal.Room) {
	e.broadcast(room, internal.EventUpdatePlayers, room.PlayerSnapshots())
}

func (e *Engine) playSound(room *internal.Room, sound string) {
	e.broadcast(room, internal.EventPlaySound, sound)
}

// lockRoom returns the room locked for writing, or nil if it is gone.
func (e *Engine) lockRoom(roomId string) *internal.Room {
	room, ok := e.registry.Get(roomId)
	if !ok {
		return nil
	}
	room.Mu.Lock()
	if room.Closed {
		room.Mu.Unlock()
		return nil
	}
	return room
}
