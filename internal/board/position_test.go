package board

import (
	"testing"

	"github.com/pelicanchess/pelican/internal/nnue"
)

// playRandomGame plays up to plies legal moves from the start position,
// calling check after every make-move. The move choice is driven by a fixed
// seed so failures reproduce.
func playRandomGame(t *testing.T, seed uint64, plies int, check func(*Board, Move)) {
	t.Helper()

	b := New()
	state := seed

	for i := 0; i < plies; i++ {
		legals := b.LegalMoves()
		if len(legals) == 0 {
			return
		}

		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		mv := legals[int(state*0x2545F4914F6CDD1D>>33)%len(legals)]

		if !b.MakeMove(mv) {
			t.Fatalf("legal move %s rejected by make-move", mv.Coords())
		}
		check(b, mv)
	}
}

// TestIncrementalHashes checks that the incrementally maintained Zobrist
// keys always match a from-scratch recomputation.
func TestIncrementalHashes(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		playRandomGame(t, seed, 120, func(b *Board, mv Move) {
			if b.Hash != b.RecalculateHash() {
				t.Fatalf("hash mismatch after %s: %016x != %016x (fen %s)",
					mv.Coords(), b.Hash, b.RecalculateHash(), b.Fen())
			}
			if b.PawnHash != b.RecalculatePawnHash() {
				t.Fatalf("pawn hash mismatch after %s: %016x != %016x (fen %s)",
					mv.Coords(), b.PawnHash, b.RecalculatePawnHash(), b.Fen())
			}
		})
	}
}

// TestOccupancyInvariant checks the occupancy aggregates after random play.
func TestOccupancyInvariant(t *testing.T) {
	playRandomGame(t, 42, 200, func(b *Board, mv Move) {
		for c := White; c <= Black; c++ {
			var sum Bitboard
			for p := Pawn; p <= King; p++ {
				sum |= b.Pieces[c][p]
			}
			if sum != b.Occupied[c] {
				t.Fatalf("occupancy mismatch for %s after %s", c, mv.Coords())
			}
		}
		if b.Occupied[White]&b.Occupied[Black] != 0 {
			t.Fatalf("colors overlap after %s", mv.Coords())
		}
		if b.Pieces[White][King].PopCount() != 1 || b.Pieces[Black][King].PopCount() != 1 {
			t.Fatalf("king count wrong after %s", mv.Coords())
		}
	})
}

// TestIncrementalAccumulator checks that applying a move's feature deltas
// produces the same accumulator as a from-scratch refresh.
func TestIncrementalAccumulator(t *testing.T) {
	net := nnue.Default
	b := New()

	acc := net.NewAccumulator()
	b.RefreshAccumulator(net, &acc)

	state := uint64(7)
	for i := 0; i < 100; i++ {
		legals := b.LegalMoves()
		if len(legals) == 0 {
			break
		}
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		mv := legals[int(state*0x2545F4914F6CDD1D>>33)%len(legals)]

		var u nnue.MoveUpdates
		if !b.MakeMoveWithUpdates(mv, &u) {
			t.Fatalf("legal move %s rejected", mv.Coords())
		}

		var next nnue.Accumulator
		acc.Apply(net, &next, u)

		var fresh nnue.Accumulator
		b.RefreshAccumulator(net, &fresh)
		if next != fresh {
			t.Fatalf("accumulator mismatch after %s (fen %s)", mv.Coords(), b.Fen())
		}
		acc = next
	}
}

// TestMakeMoveCastlingRights verifies rook captures on castling squares
// clear the captured side's right in the same move that the capturing rook
// leaves its own castling square.
func TestMakeMoveCastlingRights(t *testing.T) {
	// white rook a1 takes black rook a8: both queenside rights must go
	b, err := FromFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("FromFen: %v", err)
	}

	mv, err := b.MoveFromCoords("a1a8")
	if err != nil {
		t.Fatalf("MoveFromCoords: %v", err)
	}
	if !b.MakeMove(mv) {
		t.Fatal("a1a8 rejected")
	}

	if b.Castles[White][0] != 0 {
		t.Error("white queenside right should be cleared")
	}
	if b.Castles[Black][0] != 0 {
		t.Error("black queenside right should be cleared")
	}
	if b.Castles[White][1] == 0 || b.Castles[Black][1] == 0 {
		t.Error("kingside rights should survive")
	}
	if b.Hash != b.RecalculateHash() {
		t.Error("hash mismatch after castling-right update")
	}
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/R7/4K2R w K - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	}

	for _, fen := range fens {
		b, err := FromFen(fen)
		if err != nil {
			t.Fatalf("FromFen(%s): %v", fen, err)
		}
		if got := b.Fen(); got != fen {
			t.Errorf("round trip: got %q, want %q", got, fen)
		}
	}
}

func TestFenErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq", // 3 fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",    // 7 ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1", // no kings
	}
	for _, fen := range bad {
		if _, err := FromFen(fen); err == nil {
			t.Errorf("FromFen(%q) should fail", fen)
		}
	}
}
