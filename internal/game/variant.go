package game

import (
	"errors"
	"fmt"
)

const (
	TicTacToeType = "tictactoe"
	ReversiType   = "reversi"
)

var ErrUnknownGameType = errors.New("unknown game type")

// Resolution describes the board after an applied move: either the match is
// over, or Next names the symbol that moves now. A Finished resolution with
// an empty Winner is a draw.
type Resolution struct {
	Finished bool
	Winner   Cell
	Next     Cell
}

// Variant is one game ruleset, selected once at session creation and held by
// the session for its whole lifetime.
type Variant interface {
	Name() string
	Size() int
	NewBoard() Board
	FirstSymbol() Cell
	SecondSymbol() Cell

	IsValidMove(board Board, row, col int, symbol Cell) bool
	// ApplyMove places symbol and returns the coordinates of every opponent
	// piece it flipped. It must only be called for a cell that IsValidMove
	// accepted; it places unconditionally.
	ApplyMove(board Board, row, col int, symbol Cell) []Coord
	ValidMoves(board Board, symbol Cell) []Coord

	// Resolve inspects the board after mover's move and decides whether the
	// match ended or whose symbol moves next.
	Resolve(board Board, mover Cell) Resolution
	// Scores counts the pieces per symbol; nil for variants without scoring.
	Scores(board Board) map[Cell]int

	// BestMove picks a move for a computer-controlled player, false when the
	// symbol has nothing to play.
	BestMove(board Board, symbol Cell) (Coord, bool)
}

func NewVariant(gameType string) (Variant, error) {
	switch gameType {
	case TicTacToeType:
		return &TicTacToe{}, nil
	case ReversiType:
		return &Reversi{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameType, gameType)
	}
}

func opponentOf(symbol Cell) Cell {
	switch symbol {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	case Black:
		return White
	case White:
		return Black
	default:
		return EmptyCell
	}
}
