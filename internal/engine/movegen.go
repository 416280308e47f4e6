// Package engine implements the chess rules: move generation, attack
// detection, legality filtering, move execution and terminal-state detection.
// Every function reads a model.Position snapshot and never mutates it.
package engine

import "github.com/benbeisheim/chessrules/internal/model"

type direction struct {
	dRow, dCol int
}

var (
	rookDirs   = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = queenDirs
)

// PseudoLegalDestinations lists the squares the piece on from can reach by its
// movement rules, ignoring whether its own king is left attacked. Castling is
// included. Order is unspecified.
func PseudoLegalDestinations(pos model.Position, from model.Square) []model.Square {
	piece := pos.Board.At(from)
	if piece == nil {
		return nil
	}
	switch piece.Type {
	case model.Pawn:
		return pawnMoves(pos, from, piece.Color)
	case model.Knight:
		return stepMoves(&pos.Board, from, piece.Color, knightDirs)
	case model.Bishop:
		return slideMoves(&pos.Board, from, piece.Color, bishopDirs)
	case model.Rook:
		return slideMoves(&pos.Board, from, piece.Color, rookDirs)
	case model.Queen:
		return slideMoves(&pos.Board, from, piece.Color, queenDirs)
	case model.King:
		moves := stepMoves(&pos.Board, from, piece.Color, kingDirs)
		return append(moves, castleMoves(pos, from, piece.Color)...)
	}
	return nil
}

func pawnMoves(pos model.Position, from model.Square, color model.Color) []model.Square {
	var moves []model.Square
	dir := model.PawnDirection(color)
	startRow := 6
	if color == model.Black {
		startRow = 1
	}

	one := from.Offset(dir, 0)
	if one.Valid() && pos.Board.At(one) == nil {
		moves = append(moves, one)
		two := from.Offset(2*dir, 0)
		if from.Row == startRow && pos.Board.At(two) == nil {
			moves = append(moves, two)
		}
	}

	for _, dCol := range []int{-1, 1} {
		target := from.Offset(dir, dCol)
		if !target.Valid() {
			continue
		}
		if p := pos.Board.At(target); p != nil {
			if p.Color != color {
				moves = append(moves, target)
			}
			continue
		}
		if isEnPassantTarget(pos, from, target, color) {
			moves = append(moves, target)
		}
	}
	return moves
}

// isEnPassantTarget reports whether a pawn of color on from may capture en
// passant onto target: target is the recorded square and the passed pawn
// stands beside the mover.
func isEnPassantTarget(pos model.Position, from, target model.Square, color model.Color) bool {
	if pos.EnPassant == nil || *pos.EnPassant != target {
		return false
	}
	victim := pos.Board.At(model.Square{Row: from.Row, Col: target.Col})
	return victim != nil && victim.Type == model.Pawn && victim.Color != color
}

func stepMoves(board *model.Board, from model.Square, color model.Color, dirs []direction) []model.Square {
	var moves []model.Square
	for _, d := range dirs {
		target := from.Offset(d.dRow, d.dCol)
		if !target.Valid() {
			continue
		}
		if p := board.At(target); p == nil || p.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(board *model.Board, from model.Square, color model.Color, dirs []direction) []model.Square {
	var moves []model.Square
	for _, d := range dirs {
		target := from.Offset(d.dRow, d.dCol)
		for target.Valid() {
			p := board.At(target)
			if p == nil {
				moves = append(moves, target)
			} else {
				if p.Color != color {
					moves = append(moves, target)
				}
				break
			}
			target = target.Offset(d.dRow, d.dCol)
		}
	}
	return moves
}

// castleMoves yields the two-square king destinations whose preconditions
// hold: the right is still held, king and rook stand on their home squares,
// the squares between them are empty and the king neither starts on, crosses
// nor lands on an attacked square.
func castleMoves(pos model.Position, from model.Square, color model.Color) []model.Square {
	row := model.HomeRow(color)
	if from != (model.Square{Row: row, Col: 4}) {
		return nil
	}
	enemy := color.Opposite()
	if IsAttacked(pos.Board, from, enemy) {
		return nil
	}

	var moves []model.Square
	if pos.Castling.Kingside(color) && rookAt(&pos.Board, model.Square{Row: row, Col: 7}, color) &&
		emptyBetween(&pos.Board, row, 5, 6) &&
		!IsAttacked(pos.Board, model.Square{Row: row, Col: 5}, enemy) &&
		!IsAttacked(pos.Board, model.Square{Row: row, Col: 6}, enemy) {
		moves = append(moves, model.Square{Row: row, Col: 6})
	}
	if pos.Castling.Queenside(color) && rookAt(&pos.Board, model.Square{Row: row, Col: 0}, color) &&
		emptyBetween(&pos.Board, row, 1, 3) &&
		!IsAttacked(pos.Board, model.Square{Row: row, Col: 3}, enemy) &&
		!IsAttacked(pos.Board, model.Square{Row: row, Col: 2}, enemy) {
		moves = append(moves, model.Square{Row: row, Col: 2})
	}
	return moves
}

func rookAt(board *model.Board, sq model.Square, color model.Color) bool {
	p := board.At(sq)
	return p != nil && p.Type == model.Rook && p.Color == color
}

func emptyBetween(board *model.Board, row, fromCol, toCol int) bool {
	for col := fromCol; col <= toCol; col++ {
		if board[row][col] != nil {
			return false
		}
	}
	return true
}
