package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

type SQLiteStorage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLiteStorage{Connection: conn}, nil
}

func (that *SQLiteStorage) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS game_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			game_type TEXT NOT NULL,
			result TEXT NOT NULL,
			opponent_name TEXT,
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (player_name) REFERENCES players(name)
		)`,
	}

	for _, query := range queries {
		if _, err := that.Connection.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("failed to close sqlite connection: %w", err)
	}

	return nil
}
