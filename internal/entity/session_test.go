package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

func newTicTacToeSession(t *testing.T, vsAI bool) *Session {
	t.Helper()

	rules, err := game.NewVariant(game.TicTacToeType)
	require.NoError(t, err)

	host := NewPlayer("alice", "conn-1", rules.FirstSymbol())

	return NewSession("abc123", rules, vsAI, host)
}

func TestNewSession(t *testing.T) {
	// When: creating a fresh session
	session := newTicTacToeSession(t, false)

	// Then: it waits for a guest with the host on turn
	assert.Equal(t, game.TicTacToeType, session.GameType)
	assert.True(t, session.IsWaiting())
	assert.True(t, session.IsOpen())
	assert.Equal(t, "alice", session.CurrentTurn)
	assert.Equal(t, 3, session.Board.Size())
	assert.Nil(t, session.Guest)
}

func TestSession_IsOpen(t *testing.T) {
	t.Run("Closed once a guest joins", func(t *testing.T) {
		session := newTicTacToeSession(t, false)

		session.Guest = NewPlayer("bob", "conn-2", session.Rules.SecondSymbol())
		session.State = StatePlaying

		assert.False(t, session.IsOpen())
	})

	t.Run("Never open against the computer", func(t *testing.T) {
		session := newTicTacToeSession(t, true)

		assert.False(t, session.IsOpen())
	})
}

func TestSession_Lookups(t *testing.T) {
	// Given: a full two-player session
	session := newTicTacToeSession(t, false)
	session.Guest = NewPlayer("bob", "conn-2", session.Rules.SecondSymbol())

	t.Run("By name", func(t *testing.T) {
		require.NotNil(t, session.PlayerByName("bob"))
		assert.Equal(t, game.PlayerO, session.PlayerByName("bob").Symbol)
		assert.Nil(t, session.PlayerByName("mallory"))
	})

	t.Run("By symbol", func(t *testing.T) {
		require.NotNil(t, session.PlayerBySymbol(game.PlayerX))
		assert.Equal(t, "alice", session.PlayerBySymbol(game.PlayerX).Name)
	})

	t.Run("By connection", func(t *testing.T) {
		require.NotNil(t, session.PlayerByConn("conn-2"))
		assert.Equal(t, "bob", session.PlayerByConn("conn-2").Name)
		assert.Nil(t, session.PlayerByConn(""))
	})

	t.Run("Opponent", func(t *testing.T) {
		require.NotNil(t, session.Opponent("alice"))
		assert.Equal(t, "bob", session.Opponent("alice").Name)
	})
}

func TestSession_PlayerByConn_SkipsBot(t *testing.T) {
	// Given: a session against the computer
	session := newTicTacToeSession(t, true)
	session.Guest = NewBotPlayer(session.Rules.SecondSymbol())

	// Then: the empty bot connection never matches
	assert.Nil(t, session.PlayerByConn(""))
	assert.Equal(t, "alice", session.PlayerByConn("conn-1").Name)
}

func TestPlayer_IsBot(t *testing.T) {
	assert.False(t, NewPlayer("alice", "conn-1", game.PlayerX).IsBot())

	bot := NewBotPlayer(game.PlayerO)
	assert.True(t, bot.IsBot())
	assert.Equal(t, BotName, bot.Name)
	assert.Empty(t, bot.ConnID)
}
