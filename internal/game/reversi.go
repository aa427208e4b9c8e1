package game

const reversiSize = 8

const (
	cornerBonus = 100
	edgeBonus   = 10
)

// Reversi plays standard 8x8 Reversi: black moves first, a move must flank at
// least one opponent run, a stuck player passes, the game ends when neither
// symbol has a legal move.
type Reversi struct{}

var reversiDirections = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (that *Reversi) Name() string {
	return ReversiType
}

func (that *Reversi) Size() int {
	return reversiSize
}

func (that *Reversi) NewBoard() Board {
	board := NewBoard(reversiSize)
	board[3][3] = White
	board[3][4] = Black
	board[4][3] = Black
	board[4][4] = White

	return board
}

func (that *Reversi) FirstSymbol() Cell {
	return Black
}

func (that *Reversi) SecondSymbol() Cell {
	return White
}

func (that *Reversi) IsValidMove(board Board, row, col int, symbol Cell) bool {
	if !board.InRange(row, col) || board[row][col] != EmptyCell {
		return false
	}

	for _, dir := range reversiDirections {
		if len(that.flankedRun(board, row, col, dir, symbol)) > 0 {
			return true
		}
	}

	return false
}

func (that *Reversi) ApplyMove(board Board, row, col int, symbol Cell) []Coord {
	board[row][col] = symbol

	var flipped []Coord
	for _, dir := range reversiDirections {
		for _, pos := range that.flankedRun(board, row, col, dir, symbol) {
			board[pos.Row][pos.Col] = symbol
			flipped = append(flipped, pos)
		}
	}

	return flipped
}

func (that *Reversi) ValidMoves(board Board, symbol Cell) []Coord {
	var moves []Coord
	for row := range board {
		for col := range board[row] {
			if that.IsValidMove(board, row, col, symbol) {
				moves = append(moves, Coord{Row: row, Col: col})
			}
		}
	}

	return moves
}

func (that *Reversi) Resolve(board Board, mover Cell) Resolution {
	opponent := opponentOf(mover)

	if that.hasValidMoves(board, opponent) {
		return Resolution{Next: opponent}
	}

	// Standard pass rule: the mover keeps the turn while the opponent is stuck.
	if that.hasValidMoves(board, mover) {
		return Resolution{Next: mover}
	}

	scores := that.Scores(board)
	switch {
	case scores[Black] > scores[White]:
		return Resolution{Finished: true, Winner: Black}
	case scores[White] > scores[Black]:
		return Resolution{Finished: true, Winner: White}
	default:
		return Resolution{Finished: true}
	}
}

func (that *Reversi) Scores(board Board) map[Cell]int {
	scores := map[Cell]int{Black: 0, White: 0}
	for _, row := range board {
		for _, cell := range row {
			if cell != EmptyCell {
				scores[cell]++
			}
		}
	}

	return scores
}

// BestMove scores every legal move with a corner bonus, an edge bonus and the
// number of pieces it would flip, then takes the best one. Ties go to the
// move encountered first in row-major order.
func (that *Reversi) BestMove(board Board, symbol Cell) (Coord, bool) {
	moves := that.ValidMoves(board, symbol)
	if len(moves) == 0 {
		return Coord{}, false
	}

	best := moves[0]
	bestScore := -1

	for _, move := range moves {
		scratch := board.Clone()
		score := that.positionBonus(move) + len(that.ApplyMove(scratch, move.Row, move.Col, symbol))

		if score > bestScore {
			bestScore = score
			best = move
		}
	}

	return best, true
}

func (that *Reversi) hasValidMoves(board Board, symbol Cell) bool {
	for row := range board {
		for col := range board[row] {
			if that.IsValidMove(board, row, col, symbol) {
				return true
			}
		}
	}

	return false
}

// flankedRun returns the opponent run trapped between (row, col) and the next
// same-symbol piece in the given direction, nil when nothing is flanked.
func (that *Reversi) flankedRun(board Board, row, col int, dir [2]int, symbol Cell) []Coord {
	opponent := opponentOf(symbol)

	var run []Coord
	for r, c := row+dir[0], col+dir[1]; board.InRange(r, c); r, c = r+dir[0], c+dir[1] {
		switch board[r][c] {
		case opponent:
			run = append(run, Coord{Row: r, Col: c})
		case symbol:
			return run
		default:
			return nil
		}
	}

	return nil
}

func (that *Reversi) positionBonus(move Coord) int {
	last := reversiSize - 1
	onRowEdge := move.Row == 0 || move.Row == last
	onColEdge := move.Col == 0 || move.Col == last

	switch {
	case onRowEdge && onColEdge:
		return cornerBonus
	case onRowEdge || onColEdge:
		return edgeBonus
	default:
		return 0
	}
}
