package service

import (
	"errors"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	ChooseMove(session *entity.Session) (game.Coord, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// ChooseMove picks the bot slot's next move using the variant's heuristic.
func (that *botService) ChooseMove(session *entity.Session) (game.Coord, error) {
	var botPlayer *entity.Player
	for _, player := range session.Players() {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return game.Coord{}, ErrBotNotFound
	}

	move, ok := session.Rules.BestMove(session.Board, botPlayer.Symbol)
	if !ok {
		return game.Coord{}, ErrNoAvailableMoves
	}

	return move, nil
}
