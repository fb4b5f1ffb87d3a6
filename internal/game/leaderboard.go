package game

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/scythe504/skribblr-party/internal"
)

const LeaderboardSize = 10

// Leaderboard accumulates points per display name across rooms for the process lifetime.
type Leaderboard struct {
	mu      sync.Mutex
	entries []internal.LeaderboardEntry
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{}
}

// Record adds points to name's entry and bumps its games counter, creating it on first use.
func (l *Leaderboard) Record(name string, points int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.entries, func(e internal.LeaderboardEntry) bool { return e.Name == name })
	if i >= 0 {
		l.entries[i].Score += points
		l.entries[i].Games++
	} else {
		l.entries = append(l.entries, internal.LeaderboardEntry{Name: name, Score: points, Games: 1})
	}
	slices.SortStableFunc(l.entries, func(a, b internal.LeaderboardEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

func (l *Leaderboard) Top(n int) []internal.LeaderboardEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	n = min(n, len(l.entries))
	return append([]internal.LeaderboardEntry{}, l.entries[:n]...)
}

// Stats are process-wide counters.
type Stats struct {
	gamesStarted   atomic.Int64
	gamesCompleted atomic.Int64

	mu      sync.Mutex
	players map[string]struct{}
}

func NewStats() *Stats {
	return &Stats{players: make(map[string]struct{})}
}

func (s *Stats) GameStarted()   { s.gamesStarted.Add(1) }
func (s *Stats) GameCompleted() { s.gamesCompleted.Add(1) }

// SawPlayer records a display name; repeated names count once.
func (s *Stats) SawPlayer(name string) {
	s.mu.Lock()
	s.players[name] = struct{}{}
	s.mu.Unlock()
}

func (s *Stats) Snapshot() internal.StatsSnapshot {
	s.mu.Lock()
	players := len(s.players)
	s.mu.Unlock()
	return internal.StatsSnapshot{
		TotalGames:     s.gamesStarted.Load(),
		CompletedGames: s.gamesCompleted.Load(),
		TotalPlayers:   players,
	}
}
