package service

import (
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

// Outbound push actions. The transport forwards these verbatim as the
// message action field.
const (
	EventSessionsUpdate = "sessionsUpdate"
	EventSessionCreated = "sessionCreated"
	EventGameStart      = "gameStart"
	EventMoveMade       = "moveMade"
	EventTurnChange     = "turnChange"
	EventValidMoves     = "validMovesUpdate"
	EventGameEnd        = "gameEnd"
)

// Notifier delivers server pushes to connected clients. The websocket
// transport implements it; the session service never holds connections.
type Notifier interface {
	ToConn(connID, action string, payload any)
	ToSession(session *entity.Session, action string, payload any)
	ToAll(action string, payload any)
}

// SessionListItem is one open public invitation in the lobby list.
type SessionListItem struct {
	ID        string `json:"id"`
	GameType  string `json:"gameType"`
	Creator   string `json:"creator"`
	CreatedAt int64  `json:"createdAt"`
}

type SessionCreatedEvent struct {
	SessionID string `json:"sessionId"`
	GameType  string `json:"gameType"`
	VsAI      bool   `json:"vsAI"`
}

type GameStartEvent struct {
	SessionID   string     `json:"sessionId"`
	GameType    string     `json:"gameType"`
	Player1     string     `json:"player1"`
	Player2     string     `json:"player2"`
	CurrentTurn string     `json:"currentTurn"`
	Board       game.Board `json:"board"`
}

type MoveMadeEvent struct {
	Row           int          `json:"row"`
	Col           int          `json:"col"`
	Symbol        game.Cell    `json:"symbol"`
	PlayerName    string       `json:"playerName"`
	FlippedPieces []game.Coord `json:"flippedPieces,omitempty"`
}

type TurnChangeEvent struct {
	CurrentTurn string `json:"currentTurn"`
}

type GameEndEvent struct {
	Winner  string            `json:"winner,omitempty"`
	IsDraw  bool              `json:"isDraw"`
	Forfeit bool              `json:"forfeit"`
	Scores  map[game.Cell]int `json:"scores,omitempty"`
}
