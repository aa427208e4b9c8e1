package websocket

import "encoding/json"

// Message is the wire envelope for every inbound and outbound event.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SetNamePayload struct {
	Name string `json:"name"`
}

type CreateSessionPayload struct {
	GameType   string `json:"gameType"`
	PlayerName string `json:"playerName"`
	VsAI       bool   `json:"vsAI"`
}

type JoinSessionPayload struct {
	SessionID  string `json:"sessionId"`
	PlayerName string `json:"playerName"`
}

type MovePayload struct {
	SessionID string `json:"sessionId"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
}

type SessionPayload struct {
	SessionID string `json:"sessionId"`
}

type StatsPayload struct {
	PlayerName string `json:"playerName"`
}

type LeaderboardPayload struct {
	GameType string `json:"gameType,omitempty"`
}

type NameSetPayload struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
