package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const leaderboardLimit = 10

// StatsRepository persists terminal match outcomes and answers per-player
// and leaderboard queries.
type StatsRepository interface {
	EnsurePlayer(ctx context.Context, name string) error
	RecordGame(ctx context.Context, playerName, gameType, result, opponentName string) error
	PlayerStats(ctx context.Context, name string) ([]entity.GameStats, error)
	Leaderboard(ctx context.Context, gameType string) ([]entity.LeaderboardEntry, error)
}

type dbStats struct {
	conn *sql.DB
}

func NewStatsRepository(conn *sql.DB) StatsRepository {
	return &dbStats{
		conn: conn,
	}
}

func (that *dbStats) EnsurePlayer(ctx context.Context, name string) error {
	query := `INSERT OR IGNORE INTO players (name) VALUES (?)`

	if _, err := that.conn.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("can't save player: %w", err)
	}

	return nil
}

func (that *dbStats) RecordGame(ctx context.Context, playerName, gameType, result, opponentName string) error {
	query := `INSERT INTO game_stats (player_name, game_type, result, opponent_name) VALUES (?, ?, ?, ?)`

	if _, err := that.conn.ExecContext(ctx, query, playerName, gameType, result, opponentName); err != nil {
		return fmt.Errorf("can't record game result: %w", err)
	}

	return nil
}

func (that *dbStats) PlayerStats(ctx context.Context, name string) ([]entity.GameStats, error) {
	query := `
		SELECT
			game_type,
			COUNT(*) AS total_games,
			SUM(CASE WHEN result = 'win' THEN 1 ELSE 0 END) AS wins,
			SUM(CASE WHEN result = 'loss' THEN 1 ELSE 0 END) AS losses,
			SUM(CASE WHEN result = 'draw' THEN 1 ELSE 0 END) AS draws
		FROM game_stats
		WHERE player_name = ?
		GROUP BY game_type`

	rows, err := that.conn.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("can't query player stats: %w", err)
	}
	defer rows.Close()

	var stats []entity.GameStats
	for rows.Next() {
		var row entity.GameStats
		if err = rows.Scan(&row.GameType, &row.TotalGames, &row.Wins, &row.Losses, &row.Draws); err != nil {
			return nil, fmt.Errorf("can't scan player stats: %w", err)
		}
		stats = append(stats, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read player stats: %w", err)
	}

	return stats, nil
}

// Leaderboard returns the top players by wins, fewest games breaking ties.
// An empty gameType aggregates across all game types.
func (that *dbStats) Leaderboard(ctx context.Context, gameType string) ([]entity.LeaderboardEntry, error) {
	query := `
		SELECT
			player_name,
			COUNT(*) AS total_games,
			SUM(CASE WHEN result = 'win' THEN 1 ELSE 0 END) AS wins,
			SUM(CASE WHEN result = 'loss' THEN 1 ELSE 0 END) AS losses,
			SUM(CASE WHEN result = 'draw' THEN 1 ELSE 0 END) AS draws
		FROM game_stats`

	args := []any{}
	if gameType != "" {
		query += ` WHERE game_type = ?`
		args = append(args, gameType)
	}

	query += `
		GROUP BY player_name
		ORDER BY wins DESC, total_games ASC
		LIMIT ?`
	args = append(args, leaderboardLimit)

	rows, err := that.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []entity.LeaderboardEntry
	for rows.Next() {
		var row entity.LeaderboardEntry
		if err = rows.Scan(&row.PlayerName, &row.TotalGames, &row.Wins, &row.Losses, &row.Draws); err != nil {
			return nil, fmt.Errorf("can't scan leaderboard entry: %w", err)
		}
		entries = append(entries, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read leaderboard: %w", err)
	}

	return entries, nil
}
