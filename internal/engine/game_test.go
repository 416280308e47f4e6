package engine

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestCastlingExecution(t *testing.T) {
	tests := []struct {
		name           string
		from, to       string
		kingAt, rookAt string
		emptied        []string
		notation       string
	}{
		{name: "kingside", from: "e1", to: "g1", kingAt: "g1", rookAt: "f1", emptied: []string{"e1", "h1"}, notation: "O-O"},
		{name: "queenside", from: "e1", to: "c1", kingAt: "c1", rookAt: "d1", emptied: []string{"e1", "a1"}, notation: "O-O-O"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			move, err := g.MakeMove(tt.from, tt.to, "")
			if err != nil {
				t.Fatalf("castle: %v", err)
			}
			if p, ok := g.Piece(tt.kingAt); !ok || p != (model.Piece{Type: model.King, Color: model.White}) {
				t.Errorf("%s = %+v, want white king", tt.kingAt, p)
			}
			if p, ok := g.Piece(tt.rookAt); !ok || p != (model.Piece{Type: model.Rook, Color: model.White}) {
				t.Errorf("%s = %+v, want white rook", tt.rookAt, p)
			}
			for _, s := range tt.emptied {
				if _, ok := g.Piece(s); ok {
					t.Errorf("%s still occupied", s)
				}
			}
			castling := g.Position().Castling
			if castling.WhiteKingside || castling.WhiteQueenside {
				t.Errorf("white castling rights survive: %+v", castling)
			}
			if !castling.BlackKingside || !castling.BlackQueenside {
				t.Errorf("black castling rights lost: %+v", castling)
			}
			if move.Castle == nil || move.Castle.To.String() != tt.rookAt {
				t.Errorf("castle record = %+v, want rook to %s", move.Castle, tt.rookAt)
			}
			if move.Notation != tt.notation {
				t.Errorf("notation = %q, want %q", move.Notation, tt.notation)
			}
		})
	}
}

func TestCastlingRightsUpdates(t *testing.T) {
	t.Run("rook leaving its corner", func(t *testing.T) {
		g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, g, "h1h4")
		want := model.CastlingRights{WhiteQueenside: true, BlackKingside: true, BlackQueenside: true}
		if diff := cmp.Diff(want, g.Position().Castling); diff != "" {
			t.Errorf("castling mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rook captured on its corner", func(t *testing.T) {
		g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, g, "a1a8")
		want := model.CastlingRights{WhiteKingside: true, BlackKingside: true}
		if diff := cmp.Diff(want, g.Position().Castling); diff != "" {
			t.Errorf("castling mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("king step", func(t *testing.T) {
		g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
		play(t, g, "e8d8")
		want := model.CastlingRights{WhiteKingside: true, WhiteQueenside: true}
		if diff := cmp.Diff(want, g.Position().Castling); diff != "" {
			t.Errorf("castling mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name      string
		promotion model.PieceType
		want      model.PieceType
	}{
		{name: "default is queen", want: model.Queen},
		{name: "queen", promotion: model.Queen, want: model.Queen},
		{name: "rook", promotion: model.Rook, want: model.Rook},
		{name: "bishop", promotion: model.Bishop, want: model.Bishop},
		{name: "knight", promotion: model.Knight, want: model.Knight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, "8/P6k/8/8/8/8/8/4K3 w - - 0 1")
			move, err := g.MakeMove("a7", "a8", tt.promotion)
			if err != nil {
				t.Fatalf("promote: %v", err)
			}
			p, ok := g.Piece("a8")
			if !ok || p != (model.Piece{Type: tt.want, Color: model.White}) {
				t.Errorf("a8 = %+v, want white %s", p, tt.want)
			}
			if move.Promotion != tt.want {
				t.Errorf("move promotion = %q, want %q", move.Promotion, tt.want)
			}
			if move.Piece.Type != model.Pawn {
				t.Errorf("moved piece = %s, want pawn", move.Piece.Type)
			}
		})
	}
}

func TestPromotionWithCaptureAndUCI(t *testing.T) {
	g := mustGame(t, "1n5k/P7/8/8/8/8/8/4K3 w - - 0 1")
	move, err := g.MakeUCI("a7b8n")
	if err != nil {
		t.Fatalf("a7b8n: %v", err)
	}
	if move.Captured == nil || move.Captured.Type != model.Knight {
		t.Errorf("captured = %+v, want black knight", move.Captured)
	}
	if move.UCI() != "a7b8n" {
		t.Errorf("UCI = %q, want a7b8n", move.UCI())
	}
	if move.Notation != "axb8=N" {
		t.Errorf("notation = %q, want axb8=N", move.Notation)
	}
}

func TestMakeMoveUpdatesState(t *testing.T) {
	g := NewGame()
	move, err := g.MakeMove("g1", "f3", "")
	if err != nil {
		t.Fatalf("Nf3: %v", err)
	}
	if move.Notation != "Nf3" {
		t.Errorf("notation = %q, want Nf3", move.Notation)
	}
	if g.CurrentPlayer() != model.Black {
		t.Errorf("side to move = %s, want black", g.CurrentPlayer())
	}
	history := g.History()
	if len(history) != 1 || history[0].UCI() != "g1f3" {
		t.Errorf("history = %+v", history)
	}
	if got, want := g.ExportFEN(), "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1"; got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
}

func TestCheckStatusAfterMove(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	move, err := g.MakeMove("a1", "a8", "")
	if err != nil {
		t.Fatalf("Ra8+: %v", err)
	}
	if !move.Check || move.Notation != "Ra8+" {
		t.Errorf("move = %+v, want check Ra8+", move)
	}
	if !g.InCheck(model.Black) || g.InCheck(model.White) {
		t.Errorf("check status white=%v black=%v", g.InCheck(model.White), g.InCheck(model.Black))
	}
	if g.Status() != StatusCheck {
		t.Errorf("status = %s, want check", g.Status())
	}
}

func TestStateIsIdempotentAndDetached(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "c7c5")

	first := g.State()
	second := g.State()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("State() differs between calls (-first +second):\n%s", diff)
	}

	first.MoveHistory[0].Notation = "tampered"
	first.Board[0][0] = nil
	if diff := cmp.Diff(second, g.State()); diff != "" {
		t.Errorf("mutating a snapshot leaked into the game (-want +got):\n%s", diff)
	}
	if first.EnPassantTarget == nil || first.EnPassantTarget.String() != "c6" {
		t.Errorf("en passant target = %v, want c6", first.EnPassantTarget)
	}
}

func TestObservers(t *testing.T) {
	g := NewGame()
	var order []string
	var events []Event

	cancelFirst := g.Observe(ObserverFunc(func(e Event) {
		order = append(order, "first")
		events = append(events, e)
	}))
	g.Observe(ObserverFunc(func(e Event) {
		order = append(order, "second")
	}))

	play(t, g, "e2e4")
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
	if len(events) != 1 || events[0].Type != EventMoveCompleted || events[0].Move == nil || events[0].Move.UCI() != "e2e4" {
		t.Fatalf("events = %+v", events)
	}
	if events[0].ToMove != model.Black {
		t.Errorf("event raised before the turn flipped: %+v", events[0])
	}

	if _, err := g.MakeMove("e4", "e5", ""); err == nil {
		t.Fatal("white moved twice")
	}
	if len(events) != 2 || events[1].Type != EventMoveRejected || events[1].Reason != ErrWrongTurn.Error() {
		t.Errorf("rejection event = %+v", events[len(events)-1])
	}

	cancelFirst()
	order = nil
	play(t, g, "e7e5")
	if diff := cmp.Diff([]string{"second"}, order); diff != "" {
		t.Errorf("cancelled observer still notified (-want +got):\n%s", diff)
	}
}

func TestLoadPositionAndReset(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4")

	var loaded int
	g.Observe(ObserverFunc(func(e Event) {
		if e.Type == EventPositionLoaded {
			loaded++
		}
	}))

	if err := g.LoadPosition("8/8/8/8/8/kq6/8/K7"); err != nil {
		t.Fatalf("LoadPosition: %v", err)
	}
	if len(g.History()) != 0 {
		t.Errorf("history kept after load: %v", g.History())
	}
	if got := g.ExportPosition(); got != "8/8/8/8/8/kq6/8/K7" {
		t.Errorf("ExportPosition = %q", got)
	}
	if g.Status() != StatusStalemate {
		t.Errorf("status = %s, want stalemate", g.Status())
	}

	if err := g.LoadPosition("8/8/8/8/8/8/8/8 x"); err == nil {
		t.Error("bad side-to-move token accepted")
	}
	if got := g.ExportPosition(); got != "8/8/8/8/8/kq6/8/K7" {
		t.Errorf("failed load changed the board: %q", got)
	}

	g.Reset()
	if got := g.ExportFEN(); got != model.StartFEN {
		t.Errorf("after reset FEN = %q", got)
	}
	if loaded != 2 {
		t.Errorf("positionLoaded events = %d, want 2", loaded)
	}
	if g.InitialFEN() != model.StartFEN {
		t.Errorf("InitialFEN = %q", g.InitialFEN())
	}
}

func TestLoadPositionIsLenient(t *testing.T) {
	g := NewGame()
	if err := g.LoadPosition("rnbqkbnr/ppXppppp/8/8/8/8/PPPPPPPP/RNBQKBNR/9/extra"); err != nil {
		t.Fatalf("lenient load failed: %v", err)
	}
	if got, want := g.ExportPosition(), "rnbqkbnr/ppppppp1/8/8/8/8/PPPPPPPP/RNBQKBNR"; got != want {
		t.Errorf("ExportPosition = %q, want %q", got, want)
	}
}
