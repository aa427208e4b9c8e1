package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gamehub-backend/internal/config"
	"github.com/rocketscienceinc/gamehub-backend/internal/repository"
	"github.com/rocketscienceinc/gamehub-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gamehub-backend/internal/service"
	"github.com/rocketscienceinc/gamehub-backend/transport/rest"
	"github.com/rocketscienceinc/gamehub-backend/transport/websocket"
)

var (
	ErrAddrNotFound        = errors.New("redis address string is empty")
	ErrStoragePathNotFound = errors.New("sqlite storage path is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	if conf.SQLiteStoragePath == "" {
		return ErrStoragePathNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	presenceRepo := repository.NewPresenceRepository(redisStorage.Connection)
	statsRepo := repository.NewStatsRepository(sqliteStorage.Connection)

	statsService := service.NewStatsService(statsRepo)
	botService := service.NewBotService()
	sessionService := service.NewSessionService(logger, presenceRepo, statsService, botService, service.Timings{})

	wsServer := websocket.New(logger, sessionService, statsService, presenceRepo)
	sessionService.SetNotifier(wsServer)

	restServer := rest.New(logger, statsService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
