package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedUCI = errors.New("malformed UCI move")

// MoveRequest is a proposed move as submitted by a caller.
type MoveRequest struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// UCI renders the request in long algebraic form, e.g. "e7e8q".
func (m MoveRequest) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != "" {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// ParseUCI reads "e2e4" or "e7e8q". Surrounding space and letter case are ignored.
func ParseUCI(text string) (MoveRequest, error) {
	clean := strings.ToLower(strings.TrimSpace(text))
	if len(clean) != 4 && len(clean) != 5 {
		return MoveRequest{}, fmt.Errorf("%q: %w", text, ErrMalformedUCI)
	}
	from, ok := ParseSquare(clean[0:2])
	if !ok {
		return MoveRequest{}, fmt.Errorf("%q: %w", text, ErrMalformedUCI)
	}
	to, ok := ParseSquare(clean[2:4])
	if !ok {
		return MoveRequest{}, fmt.Errorf("%q: %w", text, ErrMalformedUCI)
	}
	req := MoveRequest{From: from, To: to}
	if len(clean) == 5 {
		promo, ok := PieceTypeFromLetter(clean[4])
		if !ok || promo == Pawn || promo == King {
			return MoveRequest{}, fmt.Errorf("%q: %w", text, ErrMalformedUCI)
		}
		req.Promotion = promo
	}
	return req, nil
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Move records an executed move. It is never modified after it enters a
// game's history.
type Move struct {
	From      Square          `json:"from"`
	To        Square          `json:"to"`
	Piece     Piece           `json:"piece"`
	Captured  *Piece          `json:"capturedPiece"`
	Promotion PieceType       `json:"promotion,omitempty"`
	Castle    *CastleRookMove `json:"castleRookMove"`
	EnPassant bool            `json:"enPassant"`
	Check     bool            `json:"check"`
	Checkmate bool            `json:"checkmate"`
	Notation  string          `json:"notation"`
}

func (m Move) Request() MoveRequest {
	return MoveRequest{From: m.From, To: m.To, Promotion: m.Promotion}
}

func (m Move) UCI() string {
	return m.Request().UCI()
}

// Annotate fills Notation from the move's own fields.
func (m *Move) Annotate() {
	m.Notation = m.getNotation()
}

func (m Move) getNotation() string {
	var notation string
	switch {
	case m.Castle != nil && m.Castle.From.Col == 7:
		notation = "O-O"
	case m.Castle != nil:
		notation = "O-O-O"
	default:
		prefix := m.Piece.Type.getPieceNotation()
		capture := ""
		if m.Captured != nil {
			capture = "x"
		}
		pawnFile := ""
		if m.Piece.Type == Pawn && m.From.Col != m.To.Col {
			pawnFile = m.From.getFileNotation()
		}
		notation = fmt.Sprintf("%s%s%s%s", prefix, pawnFile, capture, m.To.String())
		if m.Promotion != "" {
			notation += "=" + string(m.Promotion.Letter())
		}
	}
	if m.Checkmate {
		notation += "#"
	} else if m.Check {
		notation += "+"
	}
	return notation
}
