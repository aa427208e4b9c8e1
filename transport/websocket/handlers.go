package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var errNameRequired = errors.New("player name is required")

func (that *Server) handleSetName(ctx context.Context, conn *connection, payload json.RawMessage) error {
	log := that.logger.With("method", "handleSetName", "conn_id", conn.id)

	var req SetNamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.Name == "" {
		return errNameRequired
	}

	if err := that.presence.Bind(ctx, req.Name, conn.id); err != nil {
		return fmt.Errorf("failed to bind player presence: %w", err)
	}

	conn.name = req.Name

	// Outcome rows reference the player by name; make sure it exists.
	if err := that.stats.RegisterPlayer(ctx, req.Name); err != nil {
		log.Error("failed to register player", "player", req.Name, "error", err)
	}

	if err := conn.send("nameSet", NameSetPayload{Success: true, Name: req.Name}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player name set", "player", req.Name)

	return nil
}

func (that *Server) handleGetSessions(_ context.Context, conn *connection, _ json.RawMessage) error {
	if err := conn.send("sessionsUpdate", that.gameplay.PublicSessions()); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleCreateSession(ctx context.Context, conn *connection, payload json.RawMessage) error {
	var req CreateSessionPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	name := req.PlayerName
	if name == "" {
		name = conn.name
	}
	if name == "" {
		return errNameRequired
	}

	if _, err := that.gameplay.CreateSession(ctx, name, req.GameType, req.VsAI); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (that *Server) handleJoinSession(ctx context.Context, conn *connection, payload json.RawMessage) error {
	var req JoinSessionPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	name := req.PlayerName
	if name == "" {
		name = conn.name
	}
	if name == "" {
		return errNameRequired
	}

	if _, err := that.gameplay.JoinSession(ctx, req.SessionID, name); err != nil {
		return fmt.Errorf("failed to join session: %w", err)
	}

	return nil
}

func (that *Server) handleMakeMove(ctx context.Context, conn *connection, payload json.RawMessage) error {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if conn.name == "" {
		return errNameRequired
	}

	if err := that.gameplay.MakeMove(ctx, req.SessionID, conn.name, req.Row, req.Col); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}

func (that *Server) handleGetValidMoves(ctx context.Context, conn *connection, payload json.RawMessage) error {
	var req SessionPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if conn.name == "" {
		return errNameRequired
	}

	if err := that.gameplay.SendValidMoves(ctx, req.SessionID, conn.name); err != nil {
		return fmt.Errorf("failed to send valid moves: %w", err)
	}

	return nil
}

func (that *Server) handleLeaveSession(ctx context.Context, conn *connection, payload json.RawMessage) error {
	var req SessionPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if conn.name == "" {
		return errNameRequired
	}

	if err := that.gameplay.LeaveSession(ctx, req.SessionID, conn.name); err != nil {
		return fmt.Errorf("failed to leave session: %w", err)
	}

	return nil
}

func (that *Server) handleGetStats(ctx context.Context, conn *connection, payload json.RawMessage) error {
	var req StatsPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	name := req.PlayerName
	if name == "" {
		name = conn.name
	}
	if name == "" {
		return errNameRequired
	}

	stats, err := that.stats.PlayerStats(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get player stats: %w", err)
	}

	if err = conn.send("statsUpdate", stats); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleGetLeaderboard(ctx context.Context, conn *connection, payload json.RawMessage) error {
	var req LeaderboardPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	entries, err := that.stats.Leaderboard(ctx, req.GameType)
	if err != nil {
		return fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if err = conn.send("leaderboardUpdate", entries); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}
