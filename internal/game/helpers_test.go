package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/scythe504/skribblr-party/internal"
	"github.com/scythe504/skribblr-party/internal/crypto"
	"github.com/scythe504/skribblr-party/internal/words"
	"github.com/stretchr/testify/require"
)

// fakeClock runs scheduled tasks only when the test advances it.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) internal.TimerHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, firing due tasks in order. Tasks run without
// the clock lock so they can schedule more work.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// latest returns the most recently scheduled task, fired or not.
func (c *fakeClock) latest() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1]
}

type recorder struct {
	mu   sync.Mutex
	msgs map[string][]internal.Envelope
}

func newRecorder() *recorder {
	return &recorder{msgs: make(map[string][]internal.Envelope)}
}

func (r *recorder) Send(playerId string, msg internal.Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs[playerId] = append(r.msgs[playerId], msg)
}

func (r *recorder) ofType(playerId, msgType string) []internal.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internal.Envelope
	for _, m := range r.msgs[playerId] {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

func (r *recorder) last(t *testing.T, playerId, msgType string) internal.Envelope {
	t.Helper()
	msgs := r.ofType(playerId, msgType)
	require.NotEmpty(t, msgs, "player %s got no %s", playerId, msgType)
	return msgs[len(msgs)-1]
}

func (r *recorder) types(playerId string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.msgs[playerId]))
	for _, m := range r.msgs[playerId] {
		out = append(out, m.Type)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = make(map[string][]internal.Envelope)
}

type memArchive struct {
	mu      sync.Mutex
	results []internal.GameResult
}

func (a *memArchive) SaveGame(_ context.Context, result internal.GameResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, result)
	return nil
}

func (a *memArchive) saved() []internal.GameResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.results)
}

type harness struct {
	t       *testing.T
	e       *Engine
	clock   *fakeClock
	out     *recorder
	archive *memArchive
}

var testTiers = map[internal.WordDifficulty][]internal.WordEntry{
	internal.DifficultyEasy:   {{Text: "EID", Hint: "Islamic celebration", Difficulty: internal.DifficultyEasy}},
	internal.DifficultyMedium: {{Text: "Mercy", Hint: "Allah is merciful", Difficulty: internal.DifficultyMedium}},
	internal.DifficultyHard:   {{Text: "Laylatul Qadr", Hint: "Night of Power", Difficulty: internal.DifficultyHard}},
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		clock:   &fakeClock{},
		out:     newRecorder(),
		archive: &memArchive{},
	}

	var idMu sync.Mutex
	next := 0
	h.e = NewEngine(Options{
		Config:    DefaultConfig(),
		Lexicon:   words.FromTiers(testTiers, rand.New(rand.NewPCG(1, 2))),
		Sender:    h.out,
		Scheduler: h.clock,
		Archive:   h.archive,
		Hasher: crypto.NewHasher(&argon2id.Params{
			Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
		}),
		RoomIds: func() string {
			idMu.Lock()
			defer idMu.Unlock()
			next++
			return fmt.Sprintf("ROOM%02d", next)
		},
	})
	return h
}

func (h *harness) room(id string) *internal.Room {
	h.t.Helper()
	room, ok := h.e.Registry().Get(id)
	require.True(h.t, ok, "room %s not registered", id)
	return room
}

// inspect runs f with the room read-locked.
func (h *harness) inspect(id string, f func(r *internal.Room)) {
	h.t.Helper()
	room := h.room(id)
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	f(room)
}

func (h *harness) phase(id string) internal.GamePhase {
	var p internal.GamePhase
	h.inspect(id, func(r *internal.Room) { p = r.Phase })
	return p
}

// createAndFill opens a room for the first player id and joins the rest.
func (h *harness) createAndFill(data internal.CreateRoomData, ids ...string) string {
	h.t.Helper()
	data.PlayerName = ids[0]
	roomId, err := h.e.CreateRoom(ids[0], data)
	require.NoError(h.t, err)
	for _, id := range ids[1:] {
		require.NoError(h.t, h.e.JoinRoom(id, internal.JoinRoomData{RoomId: roomId, PlayerName: id}))
	}
	return roomId
}

// drawing brings a fresh room to the drawing phase with ids[0] drawing.
func (h *harness) drawing(data internal.CreateRoomData, ids ...string) string {
	h.t.Helper()
	roomId := h.createAndFill(data, ids...)
	cfg := h.e.cfg
	h.clock.Advance(cfg.StartDelay + cfg.FirstRoundDelay)
	require.Equal(h.t, internal.PhaseWordSelection, h.phase(roomId))
	h.e.ChooseWord(roomId, ids[0], 0)
	require.Equal(h.t, internal.PhaseDrawing, h.phase(roomId))
	return roomId
}

func (h *harness) assertInvariants(id string) {
	h.t.Helper()
	h.inspect(id, func(r *internal.Room) {
		drawing := 0
		for _, p := range r.Players {
			if p.IsDrawing {
				drawing++
			}
		}
		require.LessOrEqual(h.t, drawing, 1)
		if d := r.CurrentDrawer(); d != nil && r.RoundActive() {
			require.NotContains(h.t, r.GuessedPlayerIds, d.Id)
		}
		require.LessOrEqual(h.t, len(r.GuessedPlayerIds), max(len(r.Players)-1, 0))
		if len(r.Players) > 0 {
			require.GreaterOrEqual(h.t, r.CurrentDrawerIndex, 0)
			require.Less(h.t, r.CurrentDrawerIndex, len(r.Players))
		}
	})
}
