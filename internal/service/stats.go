package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

type StatsService interface {
	RegisterPlayer(ctx context.Context, name string) error
	RecordResult(ctx context.Context, playerName, gameType, result, opponentName string) error
	PlayerStats(ctx context.Context, name string) ([]entity.GameStats, error)
	Leaderboard(ctx context.Context, gameType string) ([]entity.LeaderboardEntry, error)
}

type statsRepo interface {
	EnsurePlayer(ctx context.Context, name string) error
	RecordGame(ctx context.Context, playerName, gameType, result, opponentName string) error
	PlayerStats(ctx context.Context, name string) ([]entity.GameStats, error)
	Leaderboard(ctx context.Context, gameType string) ([]entity.LeaderboardEntry, error)
}

type statsService struct {
	statsRepo statsRepo
}

func NewStatsService(statsRepo statsRepo) StatsService {
	return &statsService{
		statsRepo: statsRepo,
	}
}

func (that *statsService) RegisterPlayer(ctx context.Context, name string) error {
	if err := that.statsRepo.EnsurePlayer(ctx, name); err != nil {
		return fmt.Errorf("could not register player: %w", err)
	}

	return nil
}

func (that *statsService) RecordResult(ctx context.Context, playerName, gameType, result, opponentName string) error {
	if err := that.statsRepo.RecordGame(ctx, playerName, gameType, result, opponentName); err != nil {
		return fmt.Errorf("could not record result: %w", err)
	}

	return nil
}

func (that *statsService) PlayerStats(ctx context.Context, name string) ([]entity.GameStats, error) {
	stats, err := that.statsRepo.PlayerStats(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not get player stats: %w", err)
	}

	return stats, nil
}

func (that *statsService) Leaderboard(ctx context.Context, gameType string) ([]entity.LeaderboardEntry, error) {
	entries, err := that.statsRepo.Leaderboard(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("could not get leaderboard: %w", err)
	}

	return entries, nil
}
