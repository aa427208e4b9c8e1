package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrPlayerNotFound = errors.New("player not found")

const (
	presenceNameKeyPrefix = "presence:name:"
	presenceConnKeyPrefix = "presence:conn:"
)

// PresenceRepository maps player display names to their current transport
// connection identity, in both directions.
type PresenceRepository interface {
	Bind(ctx context.Context, name, connID string) error
	ConnID(ctx context.Context, name string) (string, error)
	Name(ctx context.Context, connID string) (string, error)
	Unbind(ctx context.Context, name, connID string) error
}

type dbPresence struct {
	client *redis.Client
}

func NewPresenceRepository(client *redis.Client) PresenceRepository {
	return &dbPresence{
		client: client,
	}
}

func (that *dbPresence) Bind(ctx context.Context, name, connID string) error {
	if err := that.client.Set(ctx, presenceNameKeyPrefix+name, connID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set player connection: %w", err)
	}

	if err := that.client.Set(ctx, presenceConnKeyPrefix+connID, name, 0).Err(); err != nil {
		return fmt.Errorf("failed to set connection player: %w", err)
	}

	return nil
}

func (that *dbPresence) ConnID(ctx context.Context, name string) (string, error) {
	connID, err := that.client.Get(ctx, presenceNameKeyPrefix+name).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrPlayerNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get connection by name: %w", err)
	}

	return connID, nil
}

func (that *dbPresence) Name(ctx context.Context, connID string) (string, error) {
	name, err := that.client.Get(ctx, presenceConnKeyPrefix+connID).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrPlayerNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get name by connection: %w", err)
	}

	return name, nil
}

func (that *dbPresence) Unbind(ctx context.Context, name, connID string) error {
	err := that.client.Del(ctx, presenceNameKeyPrefix+name, presenceConnKeyPrefix+connID).Err()
	if err != nil {
		return fmt.Errorf("failed to delete player presence: %w", err)
	}

	return nil
}
