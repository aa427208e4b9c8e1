package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	if player == "" {
		http.Error(w, "player name is required", http.StatusBadRequest)
		return
	}

	stats, err := that.stats.PlayerStats(r.Context(), player)
	if err != nil {
		that.logger.Error("failed to get player stats", "player", player, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, stats)
}

func (that *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameType := r.URL.Query().Get("game")

	entries, err := that.stats.Leaderboard(r.Context(), gameType)
	if err != nil {
		that.logger.Error("failed to get leaderboard", "game_type", gameType, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, entries)
}

func (that *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
