package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

type fakeStats struct {
	stats   []entity.GameStats
	entries []entity.LeaderboardEntry
	err     error

	lastPlayer   string
	lastGameType string
}

func (that *fakeStats) PlayerStats(_ context.Context, name string) ([]entity.GameStats, error) {
	that.lastPlayer = name

	return that.stats, that.err
}

func (that *fakeStats) Leaderboard(_ context.Context, gameType string) ([]entity.LeaderboardEntry, error) {
	that.lastGameType = gameType

	return that.entries, that.err
}

func newTestServer(stats *fakeStats) http.Handler {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), stats).router()
}

func TestHandlePing(t *testing.T) {
	recorder := httptest.NewRecorder()

	newTestServer(&fakeStats{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestHandleStats(t *testing.T) {
	t.Run("Returns the player's aggregates", func(t *testing.T) {
		// Given: a player with recorded games
		stats := &fakeStats{stats: []entity.GameStats{{
			GameType:   game.TicTacToeType,
			TotalGames: 3,
			Wins:       2,
			Losses:     1,
		}}}
		recorder := httptest.NewRecorder()

		// When: asking for alice's stats
		newTestServer(stats).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/stats/alice", nil))

		// Then: the aggregates come back as JSON
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "alice", stats.lastPlayer)

		var decoded []entity.GameStats
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, 2, decoded[0].Wins)
	})

	t.Run("Storage failure turns into a 500", func(t *testing.T) {
		stats := &fakeStats{err: errors.New("storage down")}
		recorder := httptest.NewRecorder()

		newTestServer(stats).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/stats/alice", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestHandleLeaderboard(t *testing.T) {
	t.Run("Passes the game filter through", func(t *testing.T) {
		stats := &fakeStats{entries: []entity.LeaderboardEntry{{PlayerName: "alice", Wins: 5}}}
		recorder := httptest.NewRecorder()

		newTestServer(stats).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/leaderboard?game=reversi", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, game.ReversiType, stats.lastGameType)

		var decoded []entity.LeaderboardEntry
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "alice", decoded[0].PlayerName)
	})

	t.Run("Missing filter aggregates everything", func(t *testing.T) {
		stats := &fakeStats{}
		recorder := httptest.NewRecorder()

		newTestServer(stats).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, stats.lastGameType)
	})
}
