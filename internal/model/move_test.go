package model

import (
	"errors"
	"testing"
)

func TestParseUCI(t *testing.T) {
	tests := []struct {
		text string
		want MoveRequest
	}{
		{"e2e4", MoveRequest{From: Square{Row: 6, Col: 4}, To: Square{Row: 4, Col: 4}}},
		{" E7E8Q ", MoveRequest{From: Square{Row: 1, Col: 4}, To: Square{Row: 0, Col: 4}, Promotion: Queen}},
		{"a2a1n", MoveRequest{From: Square{Row: 6, Col: 0}, To: Square{Row: 7, Col: 0}, Promotion: Knight}},
	}
	for _, tt := range tests {
		got, err := ParseUCI(tt.text)
		if err != nil {
			t.Errorf("ParseUCI(%q): %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUCI(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}

	for _, bad := range []string{"", "e2", "e2e", "e2e9", "e2e4e4", "e7e8k", "e7e8p", "e7e8x"} {
		if _, err := ParseUCI(bad); !errors.Is(err, ErrMalformedUCI) {
			t.Errorf("ParseUCI(%q) error = %v, want ErrMalformedUCI", bad, err)
		}
	}
}

func TestMoveRequestUCI(t *testing.T) {
	req := MoveRequest{From: Square{Row: 1, Col: 0}, To: Square{Row: 0, Col: 1}, Promotion: Rook}
	if got := req.UCI(); got != "a7b8r" {
		t.Errorf("UCI() = %q, want a7b8r", got)
	}
}

func TestMoveNotation(t *testing.T) {
	whitePawn := Piece{Type: Pawn, Color: White}
	blackKnight := Piece{Type: Knight, Color: Black}
	sq := func(s string) Square {
		v, _ := ParseSquare(s)
		return v
	}

	tests := []struct {
		name string
		move Move
		want string
	}{
		{name: "pawn push", move: Move{From: sq("e2"), To: sq("e4"), Piece: whitePawn}, want: "e4"},
		{name: "pawn capture", move: Move{From: sq("e4"), To: sq("d5"), Piece: whitePawn, Captured: &blackKnight}, want: "exd5"},
		{name: "piece capture with check", move: Move{From: sq("f3"), To: sq("e5"), Piece: Piece{Type: Knight, Color: White}, Captured: &blackKnight, Check: true}, want: "Nxe5+"},
		{name: "promotion", move: Move{From: sq("b7"), To: sq("b8"), Piece: whitePawn, Promotion: Queen}, want: "b8=Q"},
		{name: "mate beats check", move: Move{From: sq("d1"), To: sq("h5"), Piece: Piece{Type: Queen, Color: White}, Check: true, Checkmate: true}, want: "Qh5#"},
		{
			name: "kingside castle",
			move: Move{From: sq("e1"), To: sq("g1"), Piece: Piece{Type: King, Color: White}, Castle: &CastleRookMove{From: sq("h1"), To: sq("f1")}},
			want: "O-O",
		},
		{
			name: "queenside castle",
			move: Move{From: sq("e8"), To: sq("c8"), Piece: Piece{Type: King, Color: Black}, Castle: &CastleRookMove{From: sq("a8"), To: sq("d8")}},
			want: "O-O-O",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.move
			m.Annotate()
			if m.Notation != tt.want {
				t.Errorf("notation = %q, want %q", m.Notation, tt.want)
			}
		})
	}
}

func TestParsePieceType(t *testing.T) {
	tests := []struct {
		text string
		want PieceType
		ok   bool
	}{
		{"q", Queen, true},
		{"N", Knight, true},
		{"rook", Rook, true},
		{"Bishop", Bishop, true},
		{"", "", false},
		{"x", "", false},
		{"dragon", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePieceType(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePieceType(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}
