package entity

import "github.com/rocketscienceinc/gamehub-backend/internal/game"

// BotName is the display name the computer opponent plays under.
const BotName = "AI"

// Player occupies one of the two slots in a session. ConnID is the transport
// connection identity, empty for the bot slot.
type Player struct {
	Name   string    `json:"name"`
	ConnID string    `json:"-"`
	Symbol game.Cell `json:"symbol"`
	Bot    bool      `json:"bot,omitempty"`
}

func NewPlayer(name, connID string, symbol game.Cell) *Player {
	return &Player{
		Name:   name,
		ConnID: connID,
		Symbol: symbol,
	}
}

func NewBotPlayer(symbol game.Cell) *Player {
	return &Player{
		Name:   BotName,
		Symbol: symbol,
		Bot:    true,
	}
}

func (that *Player) IsBot() bool {
	return that.Bot
}
