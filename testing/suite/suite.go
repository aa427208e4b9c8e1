package suite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gamehub-backend/internal/repository/storage"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite boots a throwaway redis container for presence repository tests.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Env:        []string{},
	}, func(config *docker.HostConfig) {
		// stopped containers clean themselves up
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// hard kill the container in 120 seconds in case cleanup never runs
	_ = resource.Expire(expireDuration)

	redisHost := resource.GetHostPort(redisPort)

	// retry with backoff, the container might not accept connections yet
	pool.MaxWait = maxWaitDuration

	var redisClient *redis.Client
	if err = pool.Retry(func() error {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisHost,
		})
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		if err = pool.Purge(resource); err != nil {
			t.Fatalf("could not purge resource: %v", err)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	if err = redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()

		if err = pool.Purge(resource); err != nil {
			t.Fatalf("could not purge resource: %v", err)
		}
	})

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Storage: redisClient,
	}
}

// SQLiteSuite opens a fresh on-disk database with the schema applied, for
// stats repository tests.
type SQLiteSuite struct {
	*testing.T

	Storage *storage.SQLiteStorage
}

func NewSQLite(t *testing.T) (context.Context, *SQLiteSuite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("could not open sqlite storage: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()

		if err = st.Close(); err != nil {
			t.Fatalf("could not close sqlite storage: %v", err)
		}
	})

	if err = st.Init(ctx); err != nil {
		t.Fatalf("could not apply schema: %v", err)
	}

	return ctx, &SQLiteSuite{
		T:       t,
		Storage: st,
	}
}
