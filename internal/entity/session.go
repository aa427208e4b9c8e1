package entity

import (
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

const (
	StateWaiting  = "waiting"
	StatePlaying  = "playing"
	StateFinished = "finished"
)

// Session is one match instance. It is owned exclusively by the session
// registry; every other component reaches it by identifier lookup.
type Session struct {
	ID          string     `json:"id"`
	GameType    string     `json:"game_type"`
	VsAI        bool       `json:"vs_ai,omitempty"`
	Host        *Player    `json:"host"`
	Guest       *Player    `json:"guest,omitempty"`
	State       string     `json:"state"`
	Board       game.Board `json:"board"`
	CurrentTurn string     `json:"current_turn,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	Rules game.Variant `json:"-"`
}

func NewSession(id string, rules game.Variant, vsAI bool, host *Player) *Session {
	return &Session{
		ID:          id,
		GameType:    rules.Name(),
		VsAI:        vsAI,
		Host:        host,
		State:       StateWaiting,
		Board:       rules.NewBoard(),
		CurrentTurn: host.Name,
		CreatedAt:   time.Now(),
		Rules:       rules,
	}
}

func (that *Session) IsWaiting() bool {
	return that.State == StateWaiting
}

func (that *Session) IsPlaying() bool {
	return that.State == StatePlaying
}

func (that *Session) IsFinished() bool {
	return that.State == StateFinished
}

// IsOpen reports whether the session is a joinable public invitation.
func (that *Session) IsOpen() bool {
	return that.State == StateWaiting && that.Guest == nil && !that.VsAI
}

// Players returns the filled slots, host first.
func (that *Session) Players() []*Player {
	players := []*Player{that.Host}
	if that.Guest != nil {
		players = append(players, that.Guest)
	}

	return players
}

func (that *Session) PlayerByName(name string) *Player {
	for _, player := range that.Players() {
		if player.Name == name {
			return player
		}
	}

	return nil
}

func (that *Session) PlayerBySymbol(symbol game.Cell) *Player {
	for _, player := range that.Players() {
		if player.Symbol == symbol {
			return player
		}
	}

	return nil
}

func (that *Session) PlayerByConn(connID string) *Player {
	if connID == "" {
		return nil
	}

	for _, player := range that.Players() {
		if player.ConnID == connID {
			return player
		}
	}

	return nil
}

func (that *Session) Opponent(name string) *Player {
	for _, player := range that.Players() {
		if player.Name != name {
			return player
		}
	}

	return nil
}
