package service

import (
	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
)

// GameService exposes the per-session rules operations by session ID.
type GameService struct {
	manager *Manager
}

func NewGameService(manager *Manager) *GameService {
	return &GameService{
		manager: manager,
	}
}

func (gs *GameService) CreateSession(fen string) (string, engine.BoardState, error) {
	s, err := gs.manager.Create(fen)
	if err != nil {
		return "", engine.BoardState{}, err
	}
	return s.ID, s.State(), nil
}

func (gs *GameService) ListSessions() ([]SessionSummary, error) {
	return gs.manager.List()
}

func (gs *GameService) DeleteSession(id string) error {
	return gs.manager.Delete(id)
}

func (gs *GameService) GetState(id string) (engine.BoardState, error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return engine.BoardState{}, err
	}
	return s.State(), nil
}

// GetPiece returns nil for an empty square.
func (gs *GameService) GetPiece(id, square string) (*model.Piece, error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Piece(square)
}

func (gs *GameService) LegalDestinations(id, square string) ([]model.Square, error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return nil, err
	}
	return s.LegalDestinations(square)
}

func (gs *GameService) HandleMove(id string, in MoveInput) (model.Move, engine.BoardState, error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return model.Move{}, engine.BoardState{}, err
	}
	return s.Play(in)
}

func (gs *GameService) ExportPosition(id string) (placement, fen string, err error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return "", "", err
	}
	placement, fen = s.Export()
	return placement, fen, nil
}

func (gs *GameService) LoadPosition(id, fen string) (engine.BoardState, error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return engine.BoardState{}, err
	}
	return s.LoadPosition(fen)
}

func (gs *GameService) Reset(id string) (engine.BoardState, error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return engine.BoardState{}, err
	}
	return s.Reset(), nil
}

func (gs *GameService) Status(id string) (StatusReport, error) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return StatusReport{}, err
	}
	return s.Status(), nil
}

func (gs *GameService) RegisterConnection(id, clientID string, conn Sender) error {
	s, err := gs.manager.Get(id)
	if err != nil {
		return err
	}
	return s.RegisterConnection(clientID, conn)
}

func (gs *GameService) UnregisterConnection(id, clientID string, conn Sender) {
	s, err := gs.manager.Get(id)
	if err != nil {
		return
	}
	s.UnregisterConnection(clientID, conn)
}

func (gs *GameService) SendTo(id, clientID string, msg ws.Message) error {
	s, err := gs.manager.Get(id)
	if err != nil {
		return err
	}
	return s.Send(clientID, msg)
}
