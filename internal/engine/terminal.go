package engine

import "github.com/benbeisheim/chessrules/internal/model"

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// HasLegalMove reports whether color has at least one legal move, returning
// on the first one found. When color is not the side to move, the position is
// judged as if it were, without an en passant target.
func HasLegalMove(pos model.Position, color model.Color) bool {
	if pos.ToMove != color {
		pos.ToMove = color
		pos.EnPassant = nil
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := model.Square{Row: row, Col: col}
			piece := pos.Board.At(from)
			if piece == nil || piece.Color != color {
				continue
			}
			for _, to := range PseudoLegalDestinations(pos, from) {
				if IsLegal(pos, from, to) {
					return true
				}
			}
		}
	}
	return false
}

// IsCheckmate: color is in check and has no legal move.
func IsCheckmate(pos model.Position, color model.Color) bool {
	return InCheck(pos.Board, color) && !HasLegalMove(pos, color)
}

// IsStalemate: color is not in check and has no legal move.
func IsStalemate(pos model.Position, color model.Color) bool {
	return !InCheck(pos.Board, color) && !HasLegalMove(pos, color)
}

// Evaluate classifies pos from the side to move's point of view.
func Evaluate(pos model.Position) Status {
	check := InCheck(pos.Board, pos.ToMove)
	if HasLegalMove(pos, pos.ToMove) {
		if check {
			return StatusCheck
		}
		return StatusOngoing
	}
	if check {
		return StatusCheckmate
	}
	return StatusStalemate
}
