package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/storage"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Sender is the write side of a websocket connection.
type Sender interface {
	WriteJSON(v interface{}) error
}

// The connections watching a specific session
type SessionConnections struct {
	connections map[string]Sender // clientID -> connection
	mu          sync.Mutex
}

// MoveInput is a move as submitted over HTTP or websocket: either from/to
// with an optional promotion, or a single UCI string.
type MoveInput struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	UCI       string `json:"uci,omitempty"`
}

type StatusReport struct {
	Status    engine.Status      `json:"status"`
	ToMove    model.Color        `json:"toMove"`
	Check     engine.CheckStatus `json:"check"`
	Checkmate bool               `json:"checkmate"`
	Stalemate bool               `json:"stalemate"`
}

// Session owns one Game. The Game itself is single-threaded, so every access
// goes through mu.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *engine.Game
	store       *storage.Store
	lastUsed    time.Time
	connections *SessionConnections
}

func newSession(id string, game *engine.Game, store *storage.Store) *Session {
	s := &Session{
		ID:       id,
		game:     game,
		store:    store,
		lastUsed: time.Now(),
		connections: &SessionConnections{
			connections: make(map[string]Sender),
		},
	}
	game.Observe(engine.ObserverFunc(s.onEvent))
	return s
}

// onEvent runs with s.mu held, from inside the game operation that raised e.
func (s *Session) onEvent(e engine.Event) {
	if e.Type != engine.EventMoveRejected {
		if err := s.store.Save(s.snapshot()); err != nil {
			log.Errorf("session %s: persist after %s: %v", s.ID, e.Type, err)
		}
	}

	msg, err := ws.NewMessage(ws.MessageTypeEvent, e)
	if err != nil {
		log.Errorf("session %s: marshal event: %v", s.ID, err)
		return
	}
	s.broadcast(msg)
}

func (s *Session) snapshot() storage.Snapshot {
	history := s.game.History()
	moves := make([]string, 0, len(history))
	for _, m := range history {
		moves = append(moves, m.UCI())
	}
	return storage.Snapshot{
		ID:         s.ID,
		InitialFEN: s.game.InitialFEN(),
		Moves:      moves,
	}
}

func (s *Session) lock() {
	s.mu.Lock()
	s.lastUsed = time.Now()
}

func (s *Session) State() engine.BoardState {
	s.lock()
	defer s.mu.Unlock()
	return s.game.State()
}

func (s *Session) Piece(square string) (*model.Piece, error) {
	if _, ok := model.ParseSquare(square); !ok {
		return nil, fmt.Errorf("square %q: %w", square, ErrBadInput)
	}
	s.lock()
	defer s.mu.Unlock()
	p, ok := s.game.Piece(square)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Session) LegalDestinations(square string) ([]model.Square, error) {
	if _, ok := model.ParseSquare(square); !ok {
		return nil, fmt.Errorf("square %q: %w", square, ErrBadInput)
	}
	s.lock()
	defer s.mu.Unlock()
	return s.game.LegalDestinations(square), nil
}

// Play executes in. Illegal moves come back as *engine.RejectedError.
func (s *Session) Play(in MoveInput) (model.Move, engine.BoardState, error) {
	var promotion model.PieceType
	if in.Promotion != "" {
		p, ok := model.ParsePieceType(in.Promotion)
		if !ok {
			return model.Move{}, engine.BoardState{}, fmt.Errorf("promotion %q: %w", in.Promotion, ErrBadInput)
		}
		promotion = p
	}

	s.lock()
	defer s.mu.Unlock()

	var move model.Move
	var err error
	if strings.TrimSpace(in.UCI) != "" {
		move, err = s.game.MakeUCI(in.UCI)
	} else {
		move, err = s.game.MakeMove(in.From, in.To, promotion)
	}
	if err != nil {
		return model.Move{}, engine.BoardState{}, err
	}
	return move, s.game.State(), nil
}

func (s *Session) LoadPosition(fen string) (engine.BoardState, error) {
	s.lock()
	defer s.mu.Unlock()
	if err := s.game.LoadPosition(fen); err != nil {
		return engine.BoardState{}, fmt.Errorf("%w: %w", ErrBadInput, err)
	}
	return s.game.State(), nil
}

func (s *Session) Reset() engine.BoardState {
	s.lock()
	defer s.mu.Unlock()
	s.game.Reset()
	return s.game.State()
}

// Export returns the placement field and the full FEN.
func (s *Session) Export() (placement, fen string) {
	s.lock()
	defer s.mu.Unlock()
	return s.game.ExportPosition(), s.game.ExportFEN()
}

func (s *Session) Status() StatusReport {
	s.lock()
	defer s.mu.Unlock()
	toMove := s.game.CurrentPlayer()
	return StatusReport{
		Status:    s.game.Status(),
		ToMove:    toMove,
		Check:     s.game.State().Check,
		Checkmate: s.game.IsCheckmate(toMove),
		Stalemate: s.game.IsStalemate(toMove),
	}
}

// RegisterConnection attaches conn for clientID and sends it the current
// state. A second connection for the same client is refused.
func (s *Session) RegisterConnection(clientID string, conn Sender) error {
	s.lock()
	defer s.mu.Unlock()

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	if _, exists := s.connections.connections[clientID]; exists {
		return ErrAlreadyConnected
	}

	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.State())
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}
	s.connections.connections[clientID] = conn
	log.Debugf("session %s: client %s connected", s.ID, clientID)
	return nil
}

// UnregisterConnection detaches conn, unless clientID has since been bound to
// a different connection.
func (s *Session) UnregisterConnection(clientID string, conn Sender) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if current, exists := s.connections.connections[clientID]; exists && current == conn {
		delete(s.connections.connections, clientID)
		log.Debugf("session %s: client %s disconnected", s.ID, clientID)
	}
}

// Send writes msg to one client, serialised with broadcasts.
func (s *Session) Send(clientID string, msg ws.Message) error {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	conn, ok := s.connections.connections[clientID]
	if !ok {
		return fmt.Errorf("client %s: not connected", clientID)
	}
	return conn.WriteJSON(msg)
}

func (s *Session) broadcast(msg ws.Message) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	for clientID, conn := range s.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("session %s: dropping client %s: %v", s.ID, clientID, err)
			delete(s.connections.connections, clientID)
		}
	}
}

func (s *Session) connectionCount() int {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	return len(s.connections.connections)
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

// idleFor reports how long s has gone unused. busy is true when an operation
// holds the session right now.
func (s *Session) idleFor(now time.Time) (idle time.Duration, busy bool) {
	if !s.mu.TryLock() {
		return 0, true
	}
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed), false
}
