package board

import "testing"

func TestMovePacking(t *testing.T) {
	mv := NewPromotion(A7, A8, Rook)
	if mv.From() != A7 || mv.To() != A8 {
		t.Errorf("from/to mismatch: %s %s", mv.From(), mv.To())
	}
	if mv.Promo() != Rook {
		t.Errorf("promo = %s, want Rook", mv.Promo())
	}
	if mv.IsCastling() || mv.IsEnPassant() {
		t.Error("promotion flagged as castle or ep")
	}

	mv = NewCastle(E1, H1)
	if !mv.IsCastling() {
		t.Error("castle flag lost")
	}
	if mv.Coords() != "e1g1" {
		t.Errorf("castle coords = %s, want e1g1", mv.Coords())
	}

	mv = NewEnPassant(E5, D6)
	if !mv.IsEnPassant() {
		t.Error("ep flag lost")
	}
	if mv.Promo() != NoPiece {
		t.Error("ep move has a promotion piece")
	}

	if !NullMove.IsNull() {
		t.Error("null move not null")
	}
	if NullMove.Coords() != "0000" {
		t.Errorf("null coords = %s", NullMove.Coords())
	}
}

func TestMoveListNext(t *testing.T) {
	var ml MoveList
	ml.Push(NewMove(A1, A2))
	ml.Push(NewMove(B1, B2))
	ml.Push(NewMove(C1, C2))

	entries := ml.Entries()
	entries[0].Score = 5
	entries[1].Score = 50
	entries[2].Score = -3

	want := []int16{50, 5, -3}
	for i, score := range want {
		entry, ok := ml.Next(i)
		if !ok {
			t.Fatalf("Next(%d) exhausted early", i)
		}
		if entry.Score != score {
			t.Errorf("Next(%d).Score = %d, want %d", i, entry.Score, score)
		}
	}
	if _, ok := ml.Next(3); ok {
		t.Error("Next past the end should fail")
	}
}

func TestMoveFromCoordsCastle(t *testing.T) {
	b, err := FromFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("FromFen: %v", err)
	}

	mv, err := b.MoveFromCoords("e1g1")
	if err != nil {
		t.Fatalf("MoveFromCoords: %v", err)
	}
	if !mv.IsCastling() {
		t.Error("e1g1 should resolve to a castling move")
	}
	if mv.To() != H1 {
		t.Errorf("castle to = %s, want the rook square h1", mv.To())
	}

	mv, err = b.MoveFromCoords("e1c1")
	if err != nil {
		t.Fatalf("MoveFromCoords: %v", err)
	}
	if !mv.IsCastling() || mv.To() != A1 {
		t.Errorf("e1c1 should castle toward a1, got %s", mv.To())
	}
}
