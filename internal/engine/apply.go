package engine

import "github.com/benbeisheim/chessrules/internal/model"

// Apply plays req on a copy of pos and returns the resulting position with
// the move record. It trusts req to be pseudo-legal; callers that need the
// rules enforced go through Validate first. Compound effects (the en passant
// victim, the castling rook) happen in the same step as the main move.
func Apply(pos model.Position, req model.MoveRequest) (model.Position, model.Move) {
	next := pos
	board := &next.Board

	piece := board.At(req.From)
	if piece == nil {
		return pos, model.Move{}
	}
	color := piece.Color
	move := model.Move{
		From:     req.From,
		To:       req.To,
		Piece:    *piece,
		Captured: board.At(req.To),
	}

	if piece.Type == model.Pawn && move.Captured == nil && req.From.Col != req.To.Col &&
		isEnPassantTarget(pos, req.From, req.To, color) {
		victim := model.Square{Row: req.From.Row, Col: req.To.Col}
		move.Captured = board.At(victim)
		move.EnPassant = true
		board.Set(victim, nil)
	}

	placed := piece
	if piece.Type == model.Pawn && req.To.Row == model.HomeRow(color.Opposite()) {
		promotion := req.Promotion
		if promotion == "" {
			promotion = model.Queen
		}
		placed = &model.Piece{Type: promotion, Color: color}
		move.Promotion = promotion
	}
	board.Set(req.From, nil)
	board.Set(req.To, placed)

	switch piece.Type {
	case model.King:
		next.Castling.Clear(color)
		move.Castle = handleCastle(board, req)
	case model.Rook:
		next.Castling.ClearCorner(req.From)
	}
	if move.Captured != nil {
		next.Castling.ClearCorner(req.To)
	}

	next.EnPassant = nil
	if piece.Type == model.Pawn && abs(req.To.Row-req.From.Row) == 2 {
		passed := model.Square{Row: (req.From.Row + req.To.Row) / 2, Col: req.From.Col}
		next.EnPassant = &passed
	}

	if piece.Type == model.Pawn || move.Captured != nil {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if color == model.Black {
		next.FullmoveNumber++
	}
	next.ToMove = color.Opposite()
	return next, move
}

// handleCastle moves the rook when the king travelled two files and reports
// the relocation.
func handleCastle(board *model.Board, req model.MoveRequest) *model.CastleRookMove {
	if abs(req.To.Col-req.From.Col) != 2 {
		return nil
	}
	row := req.From.Row
	rookMove := &model.CastleRookMove{
		From: model.Square{Row: row, Col: 7},
		To:   model.Square{Row: row, Col: 5},
	}
	if req.To.Col == 2 {
		rookMove.From.Col, rookMove.To.Col = 0, 3
	}
	board.Set(rookMove.To, board.At(rookMove.From))
	board.Set(rookMove.From, nil)
	return rookMove
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
