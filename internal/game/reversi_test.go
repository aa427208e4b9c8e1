package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReversi_NewBoard(t *testing.T) {
	variant := &Reversi{}

	// When: building the initial board
	board := variant.NewBoard()

	// Then: the four center cells carry the standard diagonal setup
	require.Equal(t, 8, board.Size())
	assert.Equal(t, White, board[3][3])
	assert.Equal(t, Black, board[3][4])
	assert.Equal(t, Black, board[4][3])
	assert.Equal(t, White, board[4][4])

	scores := variant.Scores(board)
	assert.Equal(t, 2, scores[Black])
	assert.Equal(t, 2, scores[White])
}

func TestReversi_IsValidMove(t *testing.T) {
	variant := &Reversi{}

	t.Run("Accepts the four opening moves for black", func(t *testing.T) {
		board := variant.NewBoard()

		for _, move := range []Coord{{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4}} {
			assert.True(t, variant.IsValidMove(board, move.Row, move.Col, Black), "move %v", move)
		}
	})

	t.Run("Rejects a move that flanks nothing", func(t *testing.T) {
		board := variant.NewBoard()

		assert.False(t, variant.IsValidMove(board, 0, 0, Black))
		assert.False(t, variant.IsValidMove(board, 2, 2, Black))
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		board := variant.NewBoard()

		assert.False(t, variant.IsValidMove(board, 3, 3, Black))
	})

	t.Run("Rejects a run that hits the board edge before a friendly piece", func(t *testing.T) {
		// Given: a white run against the edge with no black cap
		board := NewBoard(8)
		board[0][1] = White
		board[0][2] = White

		// When: black plays next to the run, towards the edge
		valid := variant.IsValidMove(board, 0, 3, Black)

		// Then: nothing is flanked
		assert.False(t, valid)
	})

	t.Run("Agrees with ValidMoves on every cell", func(t *testing.T) {
		// Given: a mid-game position
		board := variant.NewBoard()
		variant.ApplyMove(board, 2, 3, Black)
		variant.ApplyMove(board, 2, 2, White)

		// When: enumerating black's moves
		moves := variant.ValidMoves(board, Black)
		listed := make(map[Coord]bool, len(moves))
		for _, move := range moves {
			listed[move] = true
		}

		// Then: IsValidMove holds exactly for the enumerated cells
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				assert.Equal(t, listed[Coord{Row: row, Col: col}], variant.IsValidMove(board, row, col, Black),
					"cell (%d,%d)", row, col)
			}
		}
	})
}

func TestReversi_ApplyMove(t *testing.T) {
	variant := &Reversi{}

	t.Run("Flips the flanked run and reports it", func(t *testing.T) {
		// Given: the initial board
		board := variant.NewBoard()

		// When: black plays the opening move above the white center piece
		flipped := variant.ApplyMove(board, 2, 3, Black)

		// Then: exactly the flanked white piece flips
		require.Equal(t, []Coord{{Row: 3, Col: 3}}, flipped)
		assert.Equal(t, Black, board[2][3])
		assert.Equal(t, Black, board[3][3])

		scores := variant.Scores(board)
		assert.Equal(t, 4, scores[Black])
		assert.Equal(t, 1, scores[White])
	})

	t.Run("Flips in several directions at once", func(t *testing.T) {
		// Given: black pieces flanking white runs horizontally and vertically
		board := NewBoard(8)
		board[3][1] = Black
		board[3][2] = White
		board[1][3] = Black
		board[2][3] = White

		// When: black plays the corner of both runs
		flipped := variant.ApplyMove(board, 3, 3, Black)

		// Then: both white pieces flip
		assert.ElementsMatch(t, []Coord{{Row: 3, Col: 2}, {Row: 2, Col: 3}}, flipped)
		assert.Equal(t, Black, board[3][2])
		assert.Equal(t, Black, board[2][3])
	})
}

func TestReversi_Resolve(t *testing.T) {
	variant := &Reversi{}

	t.Run("Passes the turn to the opponent when it can move", func(t *testing.T) {
		board := variant.NewBoard()
		variant.ApplyMove(board, 2, 3, Black)

		resolution := variant.Resolve(board, Black)

		require.False(t, resolution.Finished)
		assert.Equal(t, White, resolution.Next)
	})

	t.Run("Keeps the turn with the mover when the opponent is stuck", func(t *testing.T) {
		// Given: white has no legal reply but black still has a move
		board := NewBoard(8)
		board[0][0] = Black
		board[0][1] = White
		board[0][2] = White

		// When: resolving after black moved
		resolution := variant.Resolve(board, Black)

		// Then: black keeps the turn
		require.False(t, resolution.Finished)
		assert.Equal(t, Black, resolution.Next)
	})

	t.Run("Finishes with the higher score when nobody can move", func(t *testing.T) {
		// Given: a board where neither symbol has a legal move
		board := NewBoard(8)
		board[0][0] = Black
		board[0][1] = Black
		board[7][7] = White

		resolution := variant.Resolve(board, Black)

		require.True(t, resolution.Finished)
		assert.Equal(t, Black, resolution.Winner)
	})

	t.Run("Finishes as a draw on equal scores", func(t *testing.T) {
		board := NewBoard(8)
		board[0][0] = Black
		board[7][7] = White

		resolution := variant.Resolve(board, Black)

		require.True(t, resolution.Finished)
		assert.Equal(t, EmptyCell, resolution.Winner)
	})
}

func TestReversi_BestMove(t *testing.T) {
	variant := &Reversi{}

	t.Run("Returns false without a legal move", func(t *testing.T) {
		board := NewBoard(8)
		board[0][0] = Black

		_, ok := variant.BestMove(board, White)

		assert.False(t, ok)
	})

	t.Run("Prefers a corner over a bigger flip elsewhere", func(t *testing.T) {
		// Given: white can take the corner by flanking one piece, or flip a
		// longer run in the middle of the board
		board := NewBoard(8)
		board[0][1] = Black
		board[0][2] = White
		board[4][1] = White
		board[4][2] = Black
		board[4][3] = Black
		board[4][4] = Black

		move, ok := variant.BestMove(board, White)

		require.True(t, ok)
		assert.Equal(t, Coord{Row: 0, Col: 0}, move)
	})

	t.Run("Breaks score ties in row-major order", func(t *testing.T) {
		// Given: two symmetric single-flip moves off the board edge
		board := NewBoard(8)
		board[3][3] = White
		board[3][4] = Black
		board[4][3] = Black
		board[4][4] = White

		move, ok := variant.BestMove(board, White)

		require.True(t, ok)
		assert.Equal(t, Coord{Row: 2, Col: 4}, move)
	})
}
