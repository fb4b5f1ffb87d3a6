package internal

import (
	"errors"
	"sync"
	"time"
)

const (
	DefaultMaxPlayers   = 8
	DefaultRounds       = 3
	DefaultTimePerRound = 80
	MinPlayersToStart   = 2
	WordChoiceCount     = 3
	MaxPlayersCap       = 20
	MaxRoundsCap        = 20
	MinTimePerRound     = 10
	MaxTimePerRound     = 300
)

// GamePhase is the explicit state of a room's round state machine.
type GamePhase string

const (
	PhaseLobby         GamePhase = "lobby"
	PhaseCountdown     GamePhase = "countdown"
	PhaseWordSelection GamePhase = "word_selection"
	PhaseDrawing       GamePhase = "drawing"
	PhaseRoundEnd      GamePhase = "round_end"
	PhaseGameEnd       GamePhase = "game_end"
)

var ErrInvalidTransition = errors.New("invalid phase transition")

// allowed source phases for every target phase
var transitions = map[GamePhase][]GamePhase{
	PhaseCountdown:     {PhaseLobby},
	PhaseWordSelection: {PhaseCountdown, PhaseRoundEnd},
	PhaseDrawing:       {PhaseWordSelection},
	PhaseRoundEnd:      {PhaseWordSelection, PhaseDrawing},
	PhaseGameEnd:       {PhaseCountdown, PhaseWordSelection, PhaseDrawing, PhaseRoundEnd},
	PhaseLobby:         {PhaseCountdown, PhaseGameEnd},
}

type WordDifficulty string

const (
	DifficultyEasy   WordDifficulty = "easy"
	DifficultyMedium WordDifficulty = "medium"
	DifficultyHard   WordDifficulty = "hard"
	DifficultyCustom WordDifficulty = "custom"
)

type WordEntry struct {
	Text       string         `json:"word"`
	Hint       string         `json:"hint"`
	Difficulty WordDifficulty `json:"difficulty"`
}

// TimerHandle is a pending scheduled task owned by a room. *time.Timer satisfies it.
type TimerHandle interface {
	Stop() bool
}

type RoomSettings struct {
	MaxPlayers   int      `json:"maxPlayers"`
	Rounds       int      `json:"rounds"`
	TimePerRound int      `json:"timePerRound"`
	HasPassword  bool     `json:"hasPassword"`
	CustomWords  []string `json:"customWords,omitempty"`
}

type Room struct {
	Id         string         `json:"id"`
	Difficulty WordDifficulty `json:"difficulty"`
	Settings   RoomSettings   `json:"settings"`

	// Roster, order is turn order
	Players    []*Player `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`

	// Round Management
	Phase              GamePhase   `json:"phase"`
	CurrentRound       int         `json:"currentRound"`
	TotalRounds        int         `json:"totalRounds"`
	CurrentDrawerIndex int         `json:"currentDrawerIndex"`
	CurrentWord        *WordEntry  `json:"-"`
	WordChoices        []WordEntry `json:"-"`

	// Timer
	TimeLeft int         `json:"timeLeft"`
	MaxTime  int         `json:"maxTime"`
	Pending  TimerHandle `json:"-"`
	// Epoch changes on every phase transition; scheduled tasks capture it and
	// are discarded when it no longer matches.
	Epoch uint64 `json:"-"`

	// Guessing State
	GuessedPlayerIds map[string]struct{} `json:"-"`

	PasswordHash string   `json:"-"`
	CustomWords  []string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	// Closed is set once the room has been reclaimed from the registry.
	Closed bool `json:"-"`

	// Concurrency control
	Mu sync.RWMutex `json:"-"`
}

type RoomSummary struct {
	Id           string         `json:"id"`
	Players      int            `json:"players"`
	MaxPlayers   int            `json:"maxPlayers"`
	Difficulty   WordDifficulty `json:"difficulty"`
	HasPassword  bool           `json:"hasPassword"`
	Rounds       int            `json:"rounds"`
	TimePerRound int            `json:"timePerRound"`
}

type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Games int    `json:"games"`
}

type StatsSnapshot struct {
	TotalGames     int64 `json:"totalGames"`
	CompletedGames int64 `json:"completedGames"`
	TotalPlayers   int   `json:"totalPlayers"`
	ActiveRooms    int   `json:"activeRooms"`
}

// GameResult is the final state of a completed game, handed to the archive.
type GameResult struct {
	RoomId     string           `json:"roomId"`
	Difficulty WordDifficulty   `json:"difficulty"`
	Rounds     int              `json:"rounds"`
	Winner     PlayerSnapshot   `json:"winner"`
	Standings  []PlayerSnapshot `json:"standings"`
	EndedAt    time.Time        `json:"endedAt"`
}
