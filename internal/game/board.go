package game

// Cell holds the symbol occupying a single square, EmptyCell while free.
type Cell string

const (
	EmptyCell Cell = ""

	PlayerX Cell = "X"
	PlayerO Cell = "O"

	Black Cell = "black"
	White Cell = "white"
)

// Board is a square grid sized once at session creation and never resized.
type Board [][]Cell

func NewBoard(size int) Board {
	board := make(Board, size)
	for i := range board {
		board[i] = make([]Cell, size)
	}

	return board
}

func (that Board) Size() int {
	return len(that)
}

func (that Board) InRange(row, col int) bool {
	return row >= 0 && row < len(that) && col >= 0 && col < len(that)
}

func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that Board) Clone() Board {
	clone := make(Board, len(that))
	for i, row := range that {
		clone[i] = make([]Cell, len(row))
		copy(clone[i], row)
	}

	return clone
}

// Coord addresses one board cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
