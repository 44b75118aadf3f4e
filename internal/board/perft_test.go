package board

import "testing"

// TestPerftStartingPosition verifies move generation against the published
// perft values for the starting position.
func TestPerftStartingPosition(t *testing.T) {
	b := New()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}

	for _, tc := range tests {
		if testing.Short() && tc.depth > 4 {
			continue
		}
		got := Perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftKiwipete exercises castling, pins, promotions and en passant in
// one position.
func TestPerftKiwipete(t *testing.T) {
	b, err := FromFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("FromFen: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		got := Perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftPosition3 covers en passant discovered-check edge cases.
func TestPerftPosition3(t *testing.T) {
	b, err := FromFen("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("FromFen: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		got := Perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftEnPassantPin checks that a horizontally pinned pawn may not
// capture en passant.
func TestPerftEnPassantPin(t *testing.T) {
	b, err := FromFen("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("FromFen: %v", err)
	}

	for _, mv := range b.LegalMoves() {
		if mv.IsEnPassant() {
			t.Errorf("en passant %s should be illegal (horizontal pin)", mv.Coords())
		}
	}

	if got := Perft(b, 1); got != 6 {
		t.Errorf("perft(1) = %d, want 6", got)
	}
	if got := Perft(b, 2); got != 94 {
		t.Errorf("perft(2) = %d, want 94", got)
	}
}

// TestPerftNoDuplicates verifies the generator never emits a move twice.
func TestPerftNoDuplicates(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
	}

	for _, fen := range fens {
		b, err := FromFen(fen)
		if err != nil {
			t.Fatalf("FromFen(%s): %v", fen, err)
		}
		var noisy, quiet MoveList
		b.GenerateMovesInto(&noisy, &quiet)

		seen := make(map[Move]bool)
		for _, list := range [2]*MoveList{&noisy, &quiet} {
			for i := 0; i < list.Len(); i++ {
				entry, _ := list.Get(i)
				if seen[entry.Move] {
					t.Errorf("%s: duplicate move %s", fen, entry.Move.Coords())
				}
				seen[entry.Move] = true
			}
		}
	}
}
