package engine

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
)

func perft(pos model.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := LegalMoves(pos)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		next, _ := Apply(pos, m)
		nodes += perft(next, depth-1)
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int // indexed by depth-1
	}{
		{name: "start", fen: model.StartFEN, nodes: []int{20, 400, 8902}},
		{
			name:  "kiwipete",
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			nodes: []int{48, 2039},
		},
		{name: "endgame", fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", nodes: []int{14, 191, 2812}},
		{
			name:  "promotions and checks",
			fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			nodes: []int{6, 264},
		},
		{name: "discovered checks", fen: "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", nodes: []int{44, 1486}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			for i, want := range tt.nodes {
				depth := i + 1
				if depth > 2 && testing.Short() {
					break
				}
				if got := perft(pos, depth); got != want {
					t.Errorf("perft(%d) = %d, want %d", depth, got, want)
				}
			}
		})
	}
}
