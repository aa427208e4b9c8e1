package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

const (
	defaultBotMoveDelay = 500 * time.Millisecond
	defaultCleanupDelay = 5 * time.Second

	statsWriteTimeout = 5 * time.Second

	sessionIDLength = 8
)

// SessionService owns every live match: it registers sessions, drives their
// state transitions, applies moves and schedules bot turns and cleanup.
type SessionService interface {
	CreateSession(ctx context.Context, name, gameType string, vsAI bool) (*entity.Session, error)
	JoinSession(ctx context.Context, id, name string) (*entity.Session, error)
	MakeMove(ctx context.Context, id, name string, row, col int) error
	SendValidMoves(ctx context.Context, id, name string) error
	LeaveSession(ctx context.Context, id, name string) error
	HandleDisconnect(ctx context.Context, connID string)
	PublicSessions() []SessionListItem

	SetNotifier(notifier Notifier)
}

type presenceRepo interface {
	ConnID(ctx context.Context, name string) (string, error)
	Name(ctx context.Context, connID string) (string, error)
}

type statsRecorder interface {
	RecordResult(ctx context.Context, playerName, gameType, result, opponentName string) error
}

// Timings overrides the scheduled-continuation delays; zero values fall back
// to the defaults.
type Timings struct {
	BotMoveDelay time.Duration
	CleanupDelay time.Duration
}

type sessionService struct {
	logger *slog.Logger

	presence presenceRepo
	stats    statsRecorder
	bot      BotService

	notifier Notifier

	botMoveDelay time.Duration
	cleanupDelay time.Duration

	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func NewSessionService(logger *slog.Logger, presence presenceRepo, stats statsRecorder, bot BotService, timings Timings) SessionService {
	if timings.BotMoveDelay == 0 {
		timings.BotMoveDelay = defaultBotMoveDelay
	}
	if timings.CleanupDelay == 0 {
		timings.CleanupDelay = defaultCleanupDelay
	}

	return &sessionService{
		logger:       logger,
		presence:     presence,
		stats:        stats,
		bot:          bot,
		botMoveDelay: timings.BotMoveDelay,
		cleanupDelay: timings.CleanupDelay,
		sessions:     make(map[string]*entity.Session),
	}
}

func (that *sessionService) SetNotifier(notifier Notifier) {
	that.notifier = notifier
}

func (that *sessionService) CreateSession(ctx context.Context, name, gameType string, vsAI bool) (*entity.Session, error) {
	rules, err := game.NewVariant(gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to pick game rules: %w", err)
	}

	connID, err := that.presence.ConnID(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player connection: %w", err)
	}

	host := entity.NewPlayer(name, connID, rules.FirstSymbol())
	session := entity.NewSession(newSessionID(), rules, vsAI, host)

	if vsAI {
		session.Guest = entity.NewBotPlayer(rules.SecondSymbol())
		session.State = entity.StatePlaying
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = session

	that.notifier.ToConn(connID, EventSessionCreated, SessionCreatedEvent{
		SessionID: session.ID,
		GameType:  session.GameType,
		VsAI:      session.VsAI,
	})

	// Bot matches start immediately and are never publicly listed.
	if vsAI {
		that.notifier.ToSession(session, EventGameStart, gameStartEvent(session))
	} else {
		that.notifier.ToAll(EventSessionsUpdate, that.publicSessionsLocked())
	}

	that.logger.Info("session created", "session_id", session.ID, "game_type", gameType, "player", name, "vs_ai", vsAI)

	return session, nil
}

func (that *sessionService) JoinSession(ctx context.Context, id, name string) (*entity.Session, error) {
	connID, err := that.presence.ConnID(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player connection: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	if session.Guest != nil {
		return nil, apperror.ErrSessionFull
	}

	// Names identify players within a session; two slots with the same name
	// would make every by-name lookup ambiguous.
	if session.Host.Name == name {
		return nil, apperror.ErrNameTaken
	}

	session.Guest = entity.NewPlayer(name, connID, session.Rules.SecondSymbol())
	session.State = entity.StatePlaying

	that.notifier.ToSession(session, EventGameStart, gameStartEvent(session))
	that.notifier.ToAll(EventSessionsUpdate, that.publicSessionsLocked())

	that.logger.Info("player joined session", "session_id", session.ID, "player", name)

	return session, nil
}

func (that *sessionService) MakeMove(_ context.Context, id, name string, row, col int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return apperror.ErrSessionNotFound
	}

	// Moves are only accepted while the match is running; a waiting or
	// finished session never has a mover.
	if !session.IsPlaying() || session.CurrentTurn != name {
		return apperror.ErrNotYourTurn
	}

	player := session.PlayerByName(name)
	if player == nil {
		return apperror.ErrNotYourTurn
	}

	return that.applyMoveLocked(session, player, row, col)
}

func (that *sessionService) SendValidMoves(_ context.Context, id, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return apperror.ErrSessionNotFound
	}

	player := session.PlayerByName(name)
	if player == nil || session.GameType != game.ReversiType {
		return nil
	}

	moves := session.Rules.ValidMoves(session.Board, player.Symbol)
	if moves == nil {
		moves = []game.Coord{}
	}

	that.notifier.ToConn(player.ConnID, EventValidMoves, moves)

	return nil
}

func (that *sessionService) LeaveSession(_ context.Context, id, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return apperror.ErrSessionNotFound
	}

	// Only participants can end a match; a session id is guessable.
	if session.PlayerByName(name) == nil {
		return apperror.ErrSessionNotFound
	}

	if session.IsFinished() {
		return nil
	}

	if session.IsPlaying() {
		// Leaving a running match forfeits it to the remaining player.
		opponent := session.Opponent(name)
		if opponent == nil {
			return nil
		}
		that.endGameLocked(session, opponent.Name, true)

		that.logger.Info("player forfeited session", "session_id", session.ID, "player", name)

		return nil
	}

	delete(that.sessions, id)
	that.notifier.ToAll(EventSessionsUpdate, that.publicSessionsLocked())

	that.logger.Info("waiting session abandoned", "session_id", session.ID, "player", name)

	return nil
}

func (that *sessionService) HandleDisconnect(ctx context.Context, connID string) {
	log := that.logger.With("method", "HandleDisconnect", "conn_id", connID)

	name, err := that.presence.Name(ctx, connID)
	if err != nil {
		log.Debug("no registered name for connection", "error", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for _, session := range that.sessions {
		player := session.PlayerByConn(connID)
		if player == nil {
			continue
		}

		if name == "" {
			name = player.Name
		}

		// Only a running human-vs-human match turns a disconnect into a
		// forfeit; bot matches and waiting sessions are dropped outright.
		if opponent := session.Opponent(player.Name); session.IsPlaying() && !session.VsAI && opponent != nil {
			that.endGameLocked(session, opponent.Name, true)
		} else if !session.IsFinished() {
			delete(that.sessions, session.ID)
			that.notifier.ToAll(EventSessionsUpdate, that.publicSessionsLocked())
		}

		log.Info("player disconnected from session", "session_id", session.ID, "player", name)

		return
	}
}

func (that *sessionService) PublicSessions() []SessionListItem {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.publicSessionsLocked()
}

// applyMoveLocked runs the shared success path for human and bot moves. The
// registry mutex must be held.
func (that *sessionService) applyMoveLocked(session *entity.Session, player *entity.Player, row, col int) error {
	rules := session.Rules

	if !rules.IsValidMove(session.Board, row, col, player.Symbol) {
		return apperror.ErrInvalidMove
	}

	flipped := rules.ApplyMove(session.Board, row, col, player.Symbol)

	that.notifier.ToSession(session, EventMoveMade, MoveMadeEvent{
		Row:           row,
		Col:           col,
		Symbol:        player.Symbol,
		PlayerName:    player.Name,
		FlippedPieces: flipped,
	})

	resolution := rules.Resolve(session.Board, player.Symbol)
	if resolution.Finished {
		winnerName := ""
		if resolution.Winner != game.EmptyCell {
			winnerName = session.PlayerBySymbol(resolution.Winner).Name
		}
		that.endGameLocked(session, winnerName, false)

		return nil
	}

	next := session.PlayerBySymbol(resolution.Next)
	session.CurrentTurn = next.Name
	that.notifier.ToSession(session, EventTurnChange, TurnChangeEvent{CurrentTurn: next.Name})

	if next.IsBot() {
		that.scheduleBotTurn(session.ID)
	}

	return nil
}

// endGameLocked broadcasts the terminal result, records outcomes for the
// human participants and schedules the session's removal. An empty winnerName
// means a draw. The registry mutex must be held.
func (that *sessionService) endGameLocked(session *entity.Session, winnerName string, forfeit bool) {
	event := GameEndEvent{
		Winner:  winnerName,
		IsDraw:  winnerName == "",
		Forfeit: forfeit,
		Scores:  session.Rules.Scores(session.Board),
	}
	that.notifier.ToSession(session, EventGameEnd, event)

	that.recordOutcomes(session, winnerName)

	session.State = entity.StateFinished
	session.CurrentTurn = ""

	id := session.ID
	time.AfterFunc(that.cleanupDelay, func() {
		that.removeSession(id)
	})

	that.logger.Info("session finished", "session_id", session.ID, "winner", winnerName, "forfeit", forfeit)
}

// recordOutcomes writes one best-effort stats record per human participant.
// The bot has no stats identity and is never recorded.
func (that *sessionService) recordOutcomes(session *entity.Session, winnerName string) {
	if session.Guest == nil {
		return
	}

	for _, player := range session.Players() {
		if player.IsBot() {
			continue
		}

		result := entity.ResultLoss
		switch winnerName {
		case "":
			result = entity.ResultDraw
		case player.Name:
			result = entity.ResultWin
		}

		opponentName := ""
		if opponent := session.Opponent(player.Name); opponent != nil {
			opponentName = opponent.Name
		}

		go that.recordResult(player.Name, session.GameType, result, opponentName)
	}
}

func (that *sessionService) recordResult(name, gameType, result, opponentName string) {
	ctx, cancel := context.WithTimeout(context.Background(), statsWriteTimeout)
	defer cancel()

	if err := that.stats.RecordResult(ctx, name, gameType, result, opponentName); err != nil {
		that.logger.Error("failed to record game result", "player", name, "error", err)
	}
}

func (that *sessionService) scheduleBotTurn(id string) {
	time.AfterFunc(that.botMoveDelay, func() {
		that.playBotTurn(id)
	})
}

func (that *sessionService) playBotTurn(id string) {
	log := that.logger.With("method", "playBotTurn", "session_id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok || !session.IsPlaying() {
		// The match ended or was removed while the bot move was pending.
		return
	}

	player := session.PlayerByName(session.CurrentTurn)
	if player == nil || !player.IsBot() {
		return
	}

	move, err := that.bot.ChooseMove(session)
	if err != nil {
		log.Error("bot has no move to play", "error", err)
		return
	}

	if err = that.applyMoveLocked(session, player, move.Row, move.Col); err != nil {
		log.Error("bot failed to make a move", "error", err)
	}
}

func (that *sessionService) removeSession(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return
	}

	delete(that.sessions, id)
	that.notifier.ToAll(EventSessionsUpdate, that.publicSessionsLocked())

	that.logger.Info("session removed", "session_id", id)
}

func (that *sessionService) publicSessionsLocked() []SessionListItem {
	items := make([]SessionListItem, 0)
	for _, session := range that.sessions {
		if !session.IsOpen() {
			continue
		}

		items = append(items, SessionListItem{
			ID:        session.ID,
			GameType:  session.GameType,
			Creator:   session.Host.Name,
			CreatedAt: session.CreatedAt.UnixMilli(),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt < items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})

	return items
}

func gameStartEvent(session *entity.Session) GameStartEvent {
	return GameStartEvent{
		SessionID:   session.ID,
		GameType:    session.GameType,
		Player1:     session.Host.Name,
		Player2:     session.Guest.Name,
		CurrentTurn: session.CurrentTurn,
		Board:       session.Board,
	}
}

func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionIDLength]
}
