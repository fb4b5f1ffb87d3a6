package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/scythe504/skribblr-party/internal"
	"github.com/stretchr/testify/assert"
)

func TestLeaderboard_Record(t *testing.T) {
	lb := NewLeaderboard()
	lb.Record("Aisha", 40)
	lb.Record("Bilal", 90)
	lb.Record("Aisha", 60)

	assert.Equal(t, []internal.LeaderboardEntry{
		{Name: "Aisha", Score: 100, Games: 2},
		{Name: "Bilal", Score: 90, Games: 1},
	}, lb.Top(LeaderboardSize))
}

func TestLeaderboard_TopLimit(t *testing.T) {
	lb := NewLeaderboard()
	for i := 0; i < 15; i++ {
		lb.Record(fmt.Sprintf("p%02d", i), i)
	}
	top := lb.Top(LeaderboardSize)
	assert.Len(t, top, LeaderboardSize)
	assert.Equal(t, "p14", top[0].Name)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}

	top[0].Score = -1
	assert.Equal(t, 14, lb.Top(1)[0].Score, "Top returns a copy")
}

func TestStats(t *testing.T) {
	s := NewStats()
	s.GameStarted()
	s.GameStarted()
	s.GameCompleted()
	s.SawPlayer("Aisha")
	s.SawPlayer("Aisha")
	s.SawPlayer("Bilal")

	assert.Equal(t, internal.StatsSnapshot{TotalGames: 2, CompletedGames: 1, TotalPlayers: 2}, s.Snapshot())
}

func TestPoints(t *testing.T) {
	tests := []struct {
		timeLeft, maxTime, want int
	}{
		{80, 80, 100},
		{70, 80, 87},
		{1, 80, 1},
		{0, 80, 0},
		{-3, 80, 0},
		{90, 80, 100},
		{10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.timeLeft, tt.maxTime), func(t *testing.T) {
			assert.Equal(t, tt.want, Points(tt.timeLeft, tt.maxTime))
		})
	}

	prev := 100
	for left := 80; left >= 0; left-- {
		p := Points(left, 80)
		assert.LessOrEqual(t, p, prev)
		prev = p
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	first := internal.NewRoom("AAAAAA", internal.DifficultyEasy, internal.RoomSettings{}, "")
	second := internal.NewRoom("BBBBBB", internal.DifficultyEasy, internal.RoomSettings{}, "")
	third := internal.NewRoom("CCCCCC", internal.DifficultyEasy, internal.RoomSettings{}, "hash")

	assert.True(t, reg.Insert(first))
	assert.True(t, reg.Insert(second))
	assert.True(t, reg.Insert(third))
	assert.False(t, reg.Insert(internal.NewRoom("AAAAAA", internal.DifficultyHard, internal.RoomSettings{}, "")))

	got, ok := reg.Get("AAAAAA")
	assert.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, internal.DifficultyEasy, got.Difficulty, "existing room not overwritten")

	assert.Same(t, first, reg.FindJoinable())
	first.CurrentRound = 1
	assert.Same(t, second, reg.FindJoinable())

	ids := []string{}
	for _, s := range reg.List() {
		ids = append(ids, s.Id)
	}
	assert.Equal(t, []string{"BBBBBB", "CCCCCC"}, ids)

	reg.Remove("BBBBBB")
	reg.Remove("BBBBBB")
	assert.Nil(t, reg.FindJoinable())
	assert.Equal(t, 2, reg.Len())
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Room not found", PublicMessage(ErrRoomNotFound))
	assert.Equal(t, "Incorrect password", PublicMessage(fmt.Errorf("join: %w", ErrWrongPassword)))
	assert.Equal(t, "Room is full", PublicMessage(ErrRoomFull))
	assert.Equal(t, "Something went wrong", PublicMessage(errors.New("disk on fire")))
}
