package model

import "fmt"

// Square is a zero-based board coordinate. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Row int
	Col int
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// ParseSquare converts algebraic text such as "e4" to a Square.
func ParseSquare(text string) (Square, bool) {
	if len(text) != 2 {
		return Square{}, false
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, false
	}
	return Square{Row: 8 - int(rank-'0'), Col: int(file - 'a')}, true
}

// String renders the square in algebraic notation, "-" when off the board.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

func (s Square) Offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("square %d,%d off the board", s.Row, s.Col)
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, ok := ParseSquare(string(text))
	if !ok {
		return fmt.Errorf("malformed square %q", text)
	}
	*s = sq
	return nil
}
