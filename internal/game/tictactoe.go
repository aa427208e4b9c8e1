package game

const tictactoeSize = 3

// TicTacToe plays the classic 3x3 game: X moves first, a full row, column or
// diagonal wins, a full board with no winner is a draw.
type TicTacToe struct{}

func (that *TicTacToe) Name() string {
	return TicTacToeType
}

func (that *TicTacToe) Size() int {
	return tictactoeSize
}

func (that *TicTacToe) NewBoard() Board {
	return NewBoard(tictactoeSize)
}

func (that *TicTacToe) FirstSymbol() Cell {
	return PlayerX
}

func (that *TicTacToe) SecondSymbol() Cell {
	return PlayerO
}

func (that *TicTacToe) IsValidMove(board Board, row, col int, _ Cell) bool {
	return board.InRange(row, col) && board[row][col] == EmptyCell
}

func (that *TicTacToe) ApplyMove(board Board, row, col int, symbol Cell) []Coord {
	board[row][col] = symbol
	return nil
}

// ValidMoves is not used for tictactoe: every empty cell is legal and the
// grid itself conveys that to the client.
func (that *TicTacToe) ValidMoves(_ Board, _ Cell) []Coord {
	return nil
}

// Winner returns the symbol holding a full row, column or diagonal, or
// EmptyCell when nobody has won.
func (that *TicTacToe) Winner(board Board) Cell {
	for i := 0; i < tictactoeSize; i++ {
		if board[i][0] != EmptyCell && board[i][1] == board[i][0] && board[i][2] == board[i][0] {
			return board[i][0]
		}

		if board[0][i] != EmptyCell && board[1][i] == board[0][i] && board[2][i] == board[0][i] {
			return board[0][i]
		}
	}

	if board[0][0] != EmptyCell && board[1][1] == board[0][0] && board[2][2] == board[0][0] {
		return board[0][0]
	}

	if board[0][2] != EmptyCell && board[1][1] == board[0][2] && board[2][0] == board[0][2] {
		return board[0][2]
	}

	return EmptyCell
}

func (that *TicTacToe) Resolve(board Board, mover Cell) Resolution {
	if winner := that.Winner(board); winner != EmptyCell {
		return Resolution{Finished: true, Winner: winner}
	}

	if board.IsFull() {
		return Resolution{Finished: true}
	}

	return Resolution{Next: opponentOf(mover)}
}

func (that *TicTacToe) Scores(_ Board) map[Cell]int {
	return nil
}

// BestMove is a greedy one-ply heuristic: win now, block the opponent's win,
// take the center, take a corner, take whatever is left.
func (that *TicTacToe) BestMove(board Board, symbol Cell) (Coord, bool) {
	if move, ok := that.findWinningMove(board, symbol); ok {
		return move, true
	}

	if move, ok := that.findWinningMove(board, opponentOf(symbol)); ok {
		return move, true
	}

	if board[1][1] == EmptyCell {
		return Coord{Row: 1, Col: 1}, true
	}

	corners := [...]Coord{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	for _, corner := range corners {
		if board[corner.Row][corner.Col] == EmptyCell {
			return corner, true
		}
	}

	for row := range board {
		for col := range board[row] {
			if board[row][col] == EmptyCell {
				return Coord{Row: row, Col: col}, true
			}
		}
	}

	return Coord{}, false
}

func (that *TicTacToe) findWinningMove(board Board, symbol Cell) (Coord, bool) {
	for row := range board {
		for col := range board[row] {
			if board[row][col] != EmptyCell {
				continue
			}

			board[row][col] = symbol
			won := that.Winner(board) == symbol
			board[row][col] = EmptyCell

			if won {
				return Coord{Row: row, Col: col}, true
			}
		}
	}

	return Coord{}, false
}
