package internal

import (
	"time"
)

type Player struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Score  int    `json:"score"`

	// Game state
	IsDrawing  bool      `json:"isDrawing"`
	HasGuessed bool      `json:"hasGuessed"`
	JoinedAt   time.Time `json:"-"`

	// Statistics
	CorrectGuesses int `json:"correctGuesses"`
	TimesDrawn     int `json:"timesDrawn"`
}

type PlayerSnapshot struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar,omitempty"`
	Score          int    `json:"score"`
	IsDrawing      bool   `json:"isDrawing"`
	HasGuessed     bool   `json:"hasGuessed"`
	CorrectGuesses int    `json:"correctGuesses"`
	TimesDrawn     int    `json:"timesDrawn"`
}

const DefaultAvatar = "👤"

func NewPlayer(id, name, avatar string) *Player {
	if name == "" {
		name = "Anonymous"
	}
	if avatar == "" {
		avatar = DefaultAvatar
	}
	return &Player{
		Id:       id,
		Name:     name,
		Avatar:   avatar,
		JoinedAt: time.Now(),
	}
}

func (p *Player) ResetRoundState() {
	p.HasGuessed = false
	p.IsDrawing = false
}

// Snapshot copies the public fields so it can be sent after the room lock is released.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Id:             p.Id,
		Name:           p.Name,
		Avatar:         p.Avatar,
		Score:          p.Score,
		IsDrawing:      p.IsDrawing,
		HasGuessed:     p.HasGuessed,
		CorrectGuesses: p.CorrectGuesses,
		TimesDrawn:     p.TimesDrawn,
	}
}
