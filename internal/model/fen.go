package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN string")

// EncodePlacement writes the piece-placement field, always eight ranks.
func EncodePlacement(b Board) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.FENLetter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// DecodePlacement reads a piece-placement field. It never fails: unknown
// characters are skipped, surplus ranks and files are dropped and missing
// squares stay empty.
func DecodePlacement(placement string) Board {
	var b Board
	ranks := strings.Split(placement, "/")
	for row := 0; row < len(ranks) && row < 8; row++ {
		col := 0
		for i := 0; i < len(ranks[row]) && col < 8; i++ {
			c := ranks[row][i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			p, ok := PieceFromLetter(c)
			if !ok {
				continue
			}
			piece := p
			b[row][col] = &piece
			col++
		}
	}
	return b
}

// ParseFEN reads a FEN string. Only the placement field is required; "" and
// "start" yield the standard start. The side-to-move token is the only field
// rejected outright, other malformed fields fall back to defaults.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 || fields[0] == "start" {
		return StartPosition(), nil
	}

	pos := Position{
		Board:          DecodePlacement(fields[0]),
		ToMove:         White,
		FullmoveNumber: 1,
	}

	if len(fields) > 1 {
		switch fields[1] {
		case "w":
			pos.ToMove = White
		case "b":
			pos.ToMove = Black
		default:
			return Position{}, fmt.Errorf("side to move %q: %w", fields[1], ErrInvalidFEN)
		}
	}

	if len(fields) > 2 {
		pos.Castling = parseCastling(fields[2])
	} else {
		pos.Castling = deriveCastling(pos.Board)
	}

	if len(fields) > 3 {
		if sq, ok := ParseSquare(fields[3]); ok {
			pos.EnPassant = &sq
		}
	}

	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil && n >= 0 {
			pos.HalfmoveClock = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			pos.FullmoveNumber = n
		}
	}
	return pos, nil
}

func parseCastling(field string) CastlingRights {
	var c CastlingRights
	for _, r := range field {
		switch r {
		case 'K':
			c.WhiteKingside = true
		case 'Q':
			c.WhiteQueenside = true
		case 'k':
			c.BlackKingside = true
		case 'q':
			c.BlackQueenside = true
		}
	}
	return c
}

// deriveCastling grants every right whose king and rook still stand on their
// home squares.
func deriveCastling(b Board) CastlingRights {
	at := func(row, col int, t PieceType, color Color) bool {
		p := b[row][col]
		return p != nil && p.Type == t && p.Color == color
	}
	whiteKing := at(7, 4, King, White)
	blackKing := at(0, 4, King, Black)
	return CastlingRights{
		WhiteKingside:  whiteKing && at(7, 7, Rook, White),
		WhiteQueenside: whiteKing && at(7, 0, Rook, White),
		BlackKingside:  blackKing && at(0, 7, Rook, Black),
		BlackQueenside: blackKing && at(0, 0, Rook, Black),
	}
}

// FEN renders all six FEN fields.
func (p Position) FEN() string {
	var sb strings.Builder
	sb.WriteString(EncodePlacement(p.Board))
	if p.ToMove == Black {
		sb.WriteString(" b ")
	} else {
		sb.WriteString(" w ")
	}

	castling := ""
	if p.Castling.WhiteKingside {
		castling += "K"
	}
	if p.Castling.WhiteQueenside {
		castling += "Q"
	}
	if p.Castling.BlackKingside {
		castling += "k"
	}
	if p.Castling.BlackQueenside {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if p.EnPassant != nil {
		sb.WriteString(p.EnPassant.String())
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}
