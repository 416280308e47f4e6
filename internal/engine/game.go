package engine

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/model"
)

type CheckStatus struct {
	White bool `json:"white"`
	Black bool `json:"black"`
}

func (c CheckStatus) For(color model.Color) bool {
	if color == model.White {
		return c.White
	}
	return c.Black
}

// BoardState is a read-only snapshot of a Game.
type BoardState struct {
	Board           model.Board          `json:"board"`
	ToMove          model.Color          `json:"toMove"`
	MoveHistory     []model.Move         `json:"moveHistory"`
	Castling        model.CastlingRights `json:"castling"`
	EnPassantTarget *model.Square        `json:"enPassantTarget"`
	Check           CheckStatus          `json:"check"`
	Status          Status               `json:"status"`
	FEN             string               `json:"fen"`
}

// Game is one game session. It is the only place positions are replaced, and
// it is not safe for concurrent use: a single caller drives it.
type Game struct {
	pos        model.Position
	initialFEN string
	history    []model.Move
	check      CheckStatus
	status     Status
	observers  []observerEntry
	nextID     int
}

// NewGame starts from the standard setup.
func NewGame() *Game {
	g := &Game{}
	g.setPosition(model.StartPosition())
	return g
}

// NewGameFromFEN starts from fen; see model.ParseFEN for the accepted forms.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := model.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{}
	g.setPosition(pos)
	return g, nil
}

func (g *Game) setPosition(pos model.Position) {
	g.pos = pos
	g.initialFEN = pos.FEN()
	g.history = nil
	g.updateCheckStatus()
	g.status = Evaluate(pos)
}

func (g *Game) updateCheckStatus() {
	g.check = CheckStatus{
		White: InCheck(g.pos.Board, model.White),
		Black: InCheck(g.pos.Board, model.Black),
	}
}

// Position returns the current position by value.
func (g *Game) Position() model.Position {
	return g.pos
}

// InitialFEN is the position the current history starts from.
func (g *Game) InitialFEN() string {
	return g.initialFEN
}

// Piece returns the piece on square; false for empty or malformed squares.
func (g *Game) Piece(square string) (model.Piece, bool) {
	sq, ok := model.ParseSquare(square)
	if !ok {
		return model.Piece{}, false
	}
	p := g.pos.Board.At(sq)
	if p == nil {
		return model.Piece{}, false
	}
	return *p, true
}

func (g *Game) CurrentPlayer() model.Color {
	return g.pos.ToMove
}

// History returns a copy of the executed moves, oldest first.
func (g *Game) History() []model.Move {
	return append([]model.Move(nil), g.history...)
}

// State returns a snapshot that shares nothing mutable with the game.
func (g *Game) State() BoardState {
	state := BoardState{
		Board:       g.pos.Board,
		ToMove:      g.pos.ToMove,
		MoveHistory: g.History(),
		Castling:    g.pos.Castling,
		Check:       g.check,
		Status:      g.status,
		FEN:         g.pos.FEN(),
	}
	if g.pos.EnPassant != nil {
		ep := *g.pos.EnPassant
		state.EnPassantTarget = &ep
	}
	return state
}

// LegalDestinations lists legal targets for the piece on square, for move
// highlighting. Malformed or empty squares have none.
func (g *Game) LegalDestinations(square string) []model.Square {
	sq, ok := model.ParseSquare(square)
	if !ok {
		return nil
	}
	return LegalDestinations(g.pos, sq)
}

// MakeMove plays from -> to. An empty promotion means queen when a pawn
// reaches the last rank.
func (g *Game) MakeMove(from, to string, promotion model.PieceType) (model.Move, error) {
	req := model.MoveRequest{Promotion: promotion}
	var ok bool
	if req.From, ok = model.ParseSquare(from); !ok {
		return g.rejected(nil, rejectInput(ErrMalformedSquare))
	}
	if req.To, ok = model.ParseSquare(to); !ok {
		return g.rejected(nil, rejectInput(ErrMalformedSquare))
	}
	return g.Play(req)
}

// MakeUCI plays a move written as "e2e4" or "e7e8n".
func (g *Game) MakeUCI(text string) (model.Move, error) {
	req, err := model.ParseUCI(text)
	if err != nil {
		return g.rejected(nil, rejectInput(err))
	}
	return g.Play(req)
}

// Play validates and executes req. On rejection the game is unchanged.
func (g *Game) Play(req model.MoveRequest) (model.Move, error) {
	if err := Validate(g.pos, req); err != nil {
		return g.rejected(&req, err)
	}

	next, move := Apply(g.pos, req)
	g.pos = next
	g.updateCheckStatus()
	g.status = Evaluate(next)

	move.Check = g.check.For(next.ToMove)
	move.Checkmate = g.status == StatusCheckmate
	move.Annotate()
	g.history = append(g.history, move)

	g.notify(Event{Type: EventMoveCompleted, Move: &move})
	return move, nil
}

func (g *Game) rejected(req *model.MoveRequest, err error) (model.Move, error) {
	reason := err.Error()
	var rej *RejectedError
	if errors.As(err, &rej) {
		reason = rej.Reason.Error()
	}
	g.notify(Event{Type: EventMoveRejected, Request: req, Reason: reason})
	return model.Move{}, err
}

func (g *Game) InCheck(color model.Color) bool {
	return g.check.For(color)
}

func (g *Game) IsCheckmate(color model.Color) bool {
	return IsCheckmate(g.pos, color)
}

func (g *Game) IsStalemate(color model.Color) bool {
	return IsStalemate(g.pos, color)
}

// Status classifies the position for the side to move.
func (g *Game) Status() Status {
	return g.status
}

// LoadPosition replaces the game with fen and clears the history. On error
// the game is left as it was.
func (g *Game) LoadPosition(fen string) error {
	pos, err := model.ParseFEN(fen)
	if err != nil {
		return err
	}
	g.setPosition(pos)
	g.notify(Event{Type: EventPositionLoaded})
	return nil
}

// Reset returns to the standard start.
func (g *Game) Reset() {
	g.setPosition(model.StartPosition())
	g.notify(Event{Type: EventPositionLoaded})
}

// ExportPosition returns the piece-placement field only.
func (g *Game) ExportPosition() string {
	return model.EncodePlacement(g.pos.Board)
}

func (g *Game) ExportFEN() string {
	return g.pos.FEN()
}
