package engine

import "github.com/benbeisheim/chessrules/internal/model"

// Validate checks req against the rules for the side to move and returns a
// *RejectedError naming the first violated rule, or nil.
func Validate(pos model.Position, req model.MoveRequest) error {
	if !req.From.Valid() || !req.To.Valid() {
		return reject(req, ErrMalformedSquare)
	}
	piece := pos.Board.At(req.From)
	if piece == nil {
		return reject(req, ErrNoPiece)
	}
	if piece.Color != pos.ToMove {
		return reject(req, ErrWrongTurn)
	}
	if target := pos.Board.At(req.To); target != nil && target.Color == piece.Color {
		return reject(req, ErrOwnPiece)
	}
	if !containsSquare(PseudoLegalDestinations(pos, req.From), req.To) {
		return reject(req, ErrUnreachable)
	}
	// A promotion choice only matters when a pawn reaches the last rank.
	if piece.Type == model.Pawn && req.To.Row == model.HomeRow(piece.Color.Opposite()) {
		switch req.Promotion {
		case "", model.Queen, model.Rook, model.Bishop, model.Knight:
		default:
			return reject(req, ErrInvalidPromotion)
		}
	}

	next, _ := Apply(pos, req)
	if InCheck(next.Board, piece.Color) {
		return reject(req, ErrKingExposed)
	}
	return nil
}

// IsLegal reports whether moving from -> to is legal for the side to move.
func IsLegal(pos model.Position, from, to model.Square) bool {
	return Validate(pos, model.MoveRequest{From: from, To: to}) == nil
}

// LegalDestinations filters the pseudo-legal destinations of the piece on
// from down to legal ones. Pieces of the side not to move have none.
func LegalDestinations(pos model.Position, from model.Square) []model.Square {
	var legal []model.Square
	for _, to := range PseudoLegalDestinations(pos, from) {
		if IsLegal(pos, from, to) {
			legal = append(legal, to)
		}
	}
	return legal
}

var promotionChoices = []model.PieceType{model.Queen, model.Rook, model.Bishop, model.Knight}

// LegalMoves enumerates every legal move for the side to move, with one entry
// per promotion choice.
func LegalMoves(pos model.Position) []model.MoveRequest {
	var moves []model.MoveRequest
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := model.Square{Row: row, Col: col}
			piece := pos.Board.At(from)
			if piece == nil || piece.Color != pos.ToMove {
				continue
			}
			for _, to := range LegalDestinations(pos, from) {
				if piece.Type == model.Pawn && to.Row == model.HomeRow(piece.Color.Opposite()) {
					for _, promo := range promotionChoices {
						moves = append(moves, model.MoveRequest{From: from, To: to, Promotion: promo})
					}
					continue
				}
				moves = append(moves, model.MoveRequest{From: from, To: to})
			}
		}
	}
	return moves
}

func containsSquare(squares []model.Square, sq model.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
