package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type statsUseCase interface {
	PlayerStats(ctx context.Context, name string) ([]entity.GameStats, error)
	Leaderboard(ctx context.Context, gameType string) ([]entity.LeaderboardEntry, error)
}

type Server struct {
	logger *slog.Logger
	stats  statsUseCase
}

func New(logger *slog.Logger, stats statsUseCase) *Server {
	return &Server{
		logger: logger,
		stats:  stats,
	}
}

func (that *Server) router() http.Handler {
	router := chi.NewRouter()
	router.Get("/ping", that.handlePing)
	router.Get("/api/stats/{player}", that.handleStats)
	router.Get("/api/leaderboard", that.handleLeaderboard)

	return router
}

func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
