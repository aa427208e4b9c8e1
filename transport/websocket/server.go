package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
	"github.com/rocketscienceinc/gamehub-backend/internal/service"
)

const (
	shutdownTimeout = 5 * time.Second

	// writeWait bounds every outbound write; pushes run under gameplay locks
	// and must not wait on a stalled client forever.
	writeWait = 10 * time.Second
)

type gameplayUseCase interface {
	CreateSession(ctx context.Context, name, gameType string, vsAI bool) (*entity.Session, error)
	JoinSession(ctx context.Context, id, name string) (*entity.Session, error)
	MakeMove(ctx context.Context, id, name string, row, col int) error
	SendValidMoves(ctx context.Context, id, name string) error
	LeaveSession(ctx context.Context, id, name string) error
	HandleDisconnect(ctx context.Context, connID string)
	PublicSessions() []service.SessionListItem
}

type statsUseCase interface {
	RegisterPlayer(ctx context.Context, name string) error
	PlayerStats(ctx context.Context, name string) ([]entity.GameStats, error)
	Leaderboard(ctx context.Context, gameType string) ([]entity.LeaderboardEntry, error)
}

type presenceRepo interface {
	Bind(ctx context.Context, name, connID string) error
	Unbind(ctx context.Context, name, connID string) error
}

// connection wraps one websocket client. Writes are serialized with a mutex
// because pushes arrive from gameplay goroutines as well as the read loop.
type connection struct {
	id   string
	name string

	mu   sync.Mutex
	sock *websocket.Conn
}

func (that *connection) send(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.sock.SetWriteDeadline(time.Now().Add(writeWait))

	if err = that.sock.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger *slog.Logger

	gameplay gameplayUseCase
	stats    statsUseCase
	presence presenceRepo

	upgrader websocket.Upgrader

	connsMutex sync.RWMutex
	conns      map[string]*connection

	handlers map[string]func(ctx context.Context, conn *connection, payload json.RawMessage) error
}

func New(logger *slog.Logger, gameplay gameplayUseCase, stats statsUseCase, presence presenceRepo) *Server {
	server := &Server{
		logger:   logger,
		gameplay: gameplay,
		stats:    stats,
		presence: presence,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		conns:    make(map[string]*connection),
		handlers: make(map[string]func(context.Context, *connection, json.RawMessage) error),
	}

	server.handlers["setName"] = server.handleSetName
	server.handlers["getSessions"] = server.handleGetSessions
	server.handlers["createSession"] = server.handleCreateSession
	server.handlers["joinSession"] = server.handleJoinSession
	server.handlers["makeMove"] = server.handleMakeMove
	server.handlers["getValidMoves"] = server.handleGetValidMoves
	server.handlers["leaveSession"] = server.handleLeaveSession
	server.handlers["getStats"] = server.handleGetStats
	server.handlers["getLeaderboard"] = server.handleGetLeaderboard

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	sock, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{
		id:   uuid.NewString(),
		sock: sock,
	}

	that.connsMutex.Lock()
	that.conns[conn.id] = conn
	that.connsMutex.Unlock()

	log = log.With("conn_id", conn.id)
	log.Info("WebSocket connection established")

	defer that.closeConnection(ctx, conn)

	that.readMessages(ctx, conn)
}

// readMessages - processes messages from the client until it disconnects.
func (that *Server) readMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "readMessages", "conn_id", conn.id)

	for {
		var message Message
		if err := conn.sock.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("connection closed unexpectedly", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		if err := handler(ctx, conn, message.Payload); err != nil {
			log.Error("failed to process message", "action", message.Action, "error", err)
			that.sendError(conn, err)
		}
	}
}

func (that *Server) closeConnection(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "closeConnection", "conn_id", conn.id)

	that.connsMutex.Lock()
	delete(that.conns, conn.id)
	that.connsMutex.Unlock()

	if conn.name != "" {
		if err := that.presence.Unbind(ctx, conn.name, conn.id); err != nil {
			log.Error("failed to unbind player presence", "error", err)
		}
	}

	that.gameplay.HandleDisconnect(ctx, conn.id)

	if err := conn.sock.Close(); err != nil {
		log.Debug("failed to close socket", "error", err)
	}

	log.Info("player disconnected", "player", conn.name)
}

// sendError pushes a non-fatal error event; the connection stays open.
func (that *Server) sendError(conn *connection, err error) {
	payload := ErrorPayload{Message: clientMessage(err)}

	if sendErr := conn.send("error", payload); sendErr != nil {
		that.logger.Error("failed to send error message", "conn_id", conn.id, "error", sendErr)
	}
}

func clientMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, apperror.ErrSessionFull):
		return "Session is full"
	case errors.Is(err, apperror.ErrNameTaken):
		return "Name already taken"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, apperror.ErrInvalidMove):
		return "Invalid move"
	case errors.Is(err, game.ErrUnknownGameType):
		return "Unknown game type"
	case errors.Is(err, errNameRequired):
		return "Set your name first"
	default:
		return "Something went wrong"
	}
}

// ToConn implements service.Notifier.
func (that *Server) ToConn(connID, action string, payload any) {
	that.connsMutex.RLock()
	conn, ok := that.conns[connID]
	that.connsMutex.RUnlock()

	if !ok {
		return
	}

	if err := conn.send(action, payload); err != nil {
		that.logger.Error("failed to push message", "conn_id", connID, "action", action, "error", err)
	}
}

// ToSession implements service.Notifier: pushes to every human participant.
func (that *Server) ToSession(session *entity.Session, action string, payload any) {
	for _, player := range session.Players() {
		if player.IsBot() {
			continue
		}

		that.ToConn(player.ConnID, action, payload)
	}
}

// ToAll implements service.Notifier.
func (that *Server) ToAll(action string, payload any) {
	that.connsMutex.RLock()
	conns := make([]*connection, 0, len(that.conns))
	for _, conn := range that.conns {
		conns = append(conns, conn)
	}
	that.connsMutex.RUnlock()

	for _, conn := range conns {
		if err := conn.send(action, payload); err != nil {
			that.logger.Error("failed to broadcast message", "conn_id", conn.id, "action", action, "error", err)
		}
	}
}
