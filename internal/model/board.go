package model

import "strings"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Letter is the uppercase FEN letter for the piece type.
func (p PieceType) Letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

func (p PieceType) getPieceNotation() string {
	if p == Pawn {
		return ""
	}
	return string(p.Letter())
}

// PieceTypeFromLetter accepts either case.
func PieceTypeFromLetter(c byte) (PieceType, bool) {
	switch c {
	case 'K', 'k':
		return King, true
	case 'Q', 'q':
		return Queen, true
	case 'R', 'r':
		return Rook, true
	case 'B', 'b':
		return Bishop, true
	case 'N', 'n':
		return Knight, true
	case 'P', 'p':
		return Pawn, true
	}
	return "", false
}

// ParsePieceType accepts a piece name ("knight") or letter ("n", "N").
func ParsePieceType(text string) (PieceType, bool) {
	if len(text) == 1 {
		return PieceTypeFromLetter(text[0])
	}
	switch t := PieceType(strings.ToLower(text)); t {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return t, true
	}
	return "", false
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is immutable once placed on a Board.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// FENLetter returns the piece letter, lowercase for black.
func (p Piece) FENLetter() byte {
	l := p.Type.Letter()
	if p.Color == Black {
		return l + ('a' - 'A')
	}
	return l
}

// PieceFromLetter decodes a FEN piece letter.
func PieceFromLetter(c byte) (Piece, bool) {
	t, ok := PieceTypeFromLetter(c)
	if !ok {
		return Piece{}, false
	}
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
	}
	return Piece{Type: t, Color: color}, true
}

// Board is indexed [row][col]; nil marks an empty square.
type Board [8][8]*Piece

func (b *Board) At(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, p *Piece) {
	if sq.Valid() {
		b[sq.Row][sq.Col] = p
	}
}

// FindKing returns the square of color's king.
func (b *Board) FindKing(color Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p != nil && p.Type == King && p.Color == color {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

func newBoard() Board {
	var board Board
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for i := 0; i < 8; i++ {
		board[0][i] = &Piece{Type: backRank[i], Color: Black}
		board[1][i] = &Piece{Type: Pawn, Color: Black}
		board[6][i] = &Piece{Type: Pawn, Color: White}
		board[7][i] = &Piece{Type: backRank[i], Color: White}
	}
	return board
}

type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func (c CastlingRights) Kingside(color Color) bool {
	if color == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

func (c CastlingRights) Queenside(color Color) bool {
	if color == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// Clear drops both rights for color.
func (c *CastlingRights) Clear(color Color) {
	if color == White {
		c.WhiteKingside, c.WhiteQueenside = false, false
	} else {
		c.BlackKingside, c.BlackQueenside = false, false
	}
}

// ClearCorner drops the right tied to the rook home square sq, if any.
func (c *CastlingRights) ClearCorner(sq Square) {
	switch sq {
	case Square{Row: 7, Col: 7}:
		c.WhiteKingside = false
	case Square{Row: 7, Col: 0}:
		c.WhiteQueenside = false
	case Square{Row: 0, Col: 7}:
		c.BlackKingside = false
	case Square{Row: 0, Col: 0}:
		c.BlackQueenside = false
	}
}

// Position is a complete, immutable game snapshot. Engine functions take it by
// value and return new positions rather than mutating.
type Position struct {
	Board          Board          `json:"board"`
	ToMove         Color          `json:"toMove"`
	Castling       CastlingRights `json:"castling"`
	EnPassant      *Square        `json:"enPassantTarget"`
	HalfmoveClock  int            `json:"halfmoveClock"`
	FullmoveNumber int            `json:"fullmoveNumber"`
}

// StartPosition returns the standard initial setup.
func StartPosition() Position {
	return Position{
		Board:  newBoard(),
		ToMove: White,
		Castling: CastlingRights{
			WhiteKingside:  true,
			WhiteQueenside: true,
			BlackKingside:  true,
			BlackQueenside: true,
		},
		FullmoveNumber: 1,
	}
}

// HomeRow is the back rank row for color.
func HomeRow(color Color) int {
	if color == White {
		return 7
	}
	return 0
}

// PawnDirection is the row delta of a forward pawn step.
func PawnDirection(color Color) int {
	if color == White {
		return -1
	}
	return 1
}
