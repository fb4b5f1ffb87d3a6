package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Envelope is the untyped form handed to senders.
type Envelope = Message[any]

func NewMessage(msgType string, data any) Envelope {
	return Envelope{Type: msgType, Data: data}
}

// Inbound intents.
const (
	IntentCreateRoom     = "createRoom"
	IntentJoinRoom       = "joinRoom"
	IntentQuickJoin      = "quickJoin"
	IntentGetRooms       = "getRooms"
	IntentGetLeaderboard = "getLeaderboard"
	IntentWordChosen     = "wordChosen"
	IntentStartDraw      = "startDraw"
	IntentDrawing        = "drawing"
	IntentStopDraw       = "stopDraw"
	IntentClear          = "clear"
	IntentFill           = "fill"
	IntentGuess          = "guess"
)

// Outbound events.
const (
	EventJoinedRoom    = "joinedRoom"
	EventPlayerJoined  = "playerJoined"
	EventPlayerLeft    = "playerLeft"
	EventUpdatePlayers = "updatePlayers"
	EventGameStart     = "gameStart"
	EventNewRound      = "newRound"
	EventChooseWord    = "chooseWord"
	EventStartDrawing  = "startDrawing"
	EventDraw          = "draw"
	EventClearCanvas   = "clearCanvas"
	EventFill          = "fill"
	EventMessage       = "message"
	EventCorrectGuess  = "correctGuess"
	EventCloseGuess    = "closeGuess"
	EventShowHint      = "showHint"
	EventTimer         = "timer"
	EventRoundEnd      = "roundEnd"
	EventGameEnd       = "gameEnd"
	EventRoomsList     = "roomsList"
	EventLeaderboard   = "leaderboard"
	EventError         = "error"
	EventPlaySound     = "playSound"
)

// Sound cues carried by EventPlaySound.
const (
	SoundJoin      = "join"
	SoundStart     = "start"
	SoundCorrect   = "correct"
	SoundRoundEnd  = "roundend"
	SoundGameStart = "gamestart"
	SoundWin       = "win"
)

type CreateRoomData struct {
	PlayerName   string         `json:"playerName"`
	Avatar       string         `json:"avatar,omitempty"`
	Difficulty   WordDifficulty `json:"difficulty"`
	MaxPlayers   int            `json:"maxPlayers"`
	Rounds       int            `json:"rounds"`
	TimePerRound int            `json:"timePerRound"`
	Password     string         `json:"password,omitempty"`
	CustomWords  []string       `json:"customWords,omitempty"`
}

type JoinRoomData struct {
	RoomId     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar,omitempty"`
	Password   string `json:"password,omitempty"`
}

type QuickJoinData struct {
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar,omitempty"`
}

type JoinedRoomData struct {
	RoomId   string       `json:"roomId"`
	PlayerId string       `json:"playerId"`
	Settings RoomSettings `json:"settings"`
}

type GameStartData struct {
	Rounds int `json:"rounds"`
}

type NewRoundData struct {
	Round       int    `json:"round"`
	TotalRounds int    `json:"totalRounds"`
	Drawer      string `json:"drawer"`
	DrawerId    string `json:"drawerId"`
}

type StartDrawingData struct {
	WordDisplay string `json:"wordDisplay"`
	Time        int    `json:"time"`
	WordLength  int    `json:"wordLength"`
}

type ChatData struct {
	Player  string `json:"player"`
	Message string `json:"message"`
}

type CorrectGuessData struct {
	Player string `json:"player"`
	Points int    `json:"points"`
}

type RoundEndData struct {
	Word  string `json:"word"`
	Round int    `json:"round"`
}

type GameEndData struct {
	Winner  PlayerSnapshot   `json:"winner"`
	Players []PlayerSnapshot `json:"players"`
}
