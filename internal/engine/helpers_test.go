package engine

import (
	"sort"
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
)

func mustPosition(t *testing.T, fen string) model.Position {
	t.Helper()
	pos, err := model.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

func sq(t *testing.T, text string) model.Square {
	t.Helper()
	s, ok := model.ParseSquare(text)
	if !ok {
		t.Fatalf("bad square %q", text)
	}
	return s
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := g.MakeUCI(m); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
}

// names renders squares as sorted algebraic text so results compare
// independently of generation order.
func names(squares []model.Square) []string {
	out := make([]string, 0, len(squares))
	for _, s := range squares {
		out = append(out, s.String())
	}
	sort.Strings(out)
	return out
}

func hasSquare(squares []model.Square, text string) bool {
	for _, s := range squares {
		if s.String() == text {
			return true
		}
	}
	return false
}
