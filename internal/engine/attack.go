package engine

import "github.com/benbeisheim/chessrules/internal/model"

// IsAttacked reports whether any piece of color by could capture on target.
// It scans outward from target using capture geometry only, so pawns attack
// diagonally even onto empty squares and castling never enters the picture.
// Whether such a capture would be legal for the attacker is not considered.
func IsAttacked(board model.Board, target model.Square, by model.Color) bool {
	is := func(sq model.Square, types ...model.PieceType) bool {
		p := board.At(sq)
		if p == nil || p.Color != by {
			return false
		}
		for _, t := range types {
			if p.Type == t {
				return true
			}
		}
		return false
	}

	for _, d := range rookDirs {
		sq := target.Offset(d.dRow, d.dCol)
		for sq.Valid() {
			if board.At(sq) != nil {
				if is(sq, model.Rook, model.Queen) {
					return true
				}
				break
			}
			sq = sq.Offset(d.dRow, d.dCol)
		}
	}
	for _, d := range bishopDirs {
		sq := target.Offset(d.dRow, d.dCol)
		for sq.Valid() {
			if board.At(sq) != nil {
				if is(sq, model.Bishop, model.Queen) {
					return true
				}
				break
			}
			sq = sq.Offset(d.dRow, d.dCol)
		}
	}
	for _, d := range knightDirs {
		if is(target.Offset(d.dRow, d.dCol), model.Knight) {
			return true
		}
	}
	for _, d := range kingDirs {
		if is(target.Offset(d.dRow, d.dCol), model.King) {
			return true
		}
	}
	// An attacking pawn sits one step behind target from its own point of view.
	behind := -model.PawnDirection(by)
	for _, dCol := range []int{-1, 1} {
		if is(target.Offset(behind, dCol), model.Pawn) {
			return true
		}
	}
	return false
}

// InCheck reports whether color's king is attacked. A board without that
// king is never in check.
func InCheck(board model.Board, color model.Color) bool {
	king, ok := board.FindKing(color)
	if !ok {
		return false
	}
	return IsAttacked(board, king, color.Opposite())
}
