package engine

import (
	"testing"

	"github.com/pelicanchess/pelican/internal/board"
)

func TestTTRoundTrip(t *testing.T) {
	tt := NewTT(1)

	key := uint64(0xDEADBEEFCAFEBABE)
	mv := board.NewMove(board.E2, board.E4)
	tt.Store(key, 123, LowerBound, mv, 7, 0)

	entry, ok := tt.Get(key)
	if !ok {
		t.Fatal("stored entry not found")
	}
	if entry.Move != mv {
		t.Errorf("move = %s, want %s", entry.Move.Coords(), mv.Coords())
	}
	if entry.Depth != 7 {
		t.Errorf("depth = %d, want 7", entry.Depth)
	}
	if entry.ScoreType() != LowerBound {
		t.Errorf("score type = %d, want LowerBound", entry.ScoreType())
	}
	if ScoreFromTT(entry.Score, 0) != 123 {
		t.Errorf("score = %d, want 123", entry.Score)
	}

	// a different key fragment at the same index must read as a miss
	if _, ok := tt.Get(key ^ 1); ok {
		t.Error("mismatched key fragment returned a hit")
	}
}

func TestTTEntryPacking(t *testing.T) {
	entry := TTEntry{
		Key:   0xABCD,
		Move:  board.NewPromotion(board.A7, board.A8, board.Queen),
		Score: -312,
		Depth: 42,
		Info:  uint8(UpperBound),
	}
	if got := unpackEntry(entry.pack()); got != entry {
		t.Errorf("pack/unpack mismatch: %+v != %+v", got, entry)
	}
}

func TestTTScoreMateAdjustment(t *testing.T) {
	for _, score := range []int{0, 250, -250, MateScore - 3, -(MateScore - 3), MinTbWinScore, -MinTbWinScore} {
		for _, ply := range []int{0, 1, 5, 40} {
			if got := ScoreFromTT(ScoreToTT(score, ply), ply); got != score {
				t.Errorf("ScoreFromTT(ScoreToTT(%d, %d)) = %d", score, ply, got)
			}
		}
	}
}

func TestTTClearAndFill(t *testing.T) {
	tt := NewTT(1)
	if tt.Fill() != 0 {
		t.Error("fresh table should be empty")
	}

	for i := uint64(0); i < 100000; i++ {
		tt.Store(i*0x9E3779B97F4A7C15, 1, Exact, board.NewMove(board.E2, board.E4), 1, 0)
	}
	if tt.Fill() == 0 {
		t.Error("fill should be nonzero after many stores")
	}

	tt.Clear()
	if tt.Fill() != 0 {
		t.Error("fill should be zero after clear")
	}
}

func TestTTZeroSize(t *testing.T) {
	tt := NewTT(0)
	tt.Store(1, 1, Exact, board.NewMove(board.E2, board.E4), 1, 0)
	if _, ok := tt.Get(1); ok {
		t.Error("zero-size table should always miss")
	}
}
