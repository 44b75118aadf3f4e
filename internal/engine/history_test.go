package engine

import (
	"testing"

	"github.com/pelicanchess/pelican/internal/board"
)

// TestHistoryBounds hammers one entry with mixed bonuses and maluses and
// checks the gravity formula keeps it inside [-HistoryMax, HistoryMax].
func TestHistoryBounds(t *testing.T) {
	var h HistoryTable

	state := uint64(99)
	for i := 0; i < 10000; i++ {
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27

		delta := HistoryDelta(int(state>>60) + 1)
		if state&1 == 0 {
			h.Bonus(board.Knight, board.F3, delta)
		} else {
			h.Malus(board.Knight, board.F3, delta)
		}

		score := h.Get(board.Knight, board.F3)
		if score > HistoryMax || score < -HistoryMax {
			t.Fatalf("history escaped bounds after %d updates: %d", i+1, score)
		}
	}
}

func TestHistorySaturates(t *testing.T) {
	var h HistoryTable
	delta := HistoryDelta(MaxDepth)

	for i := 0; i < 200; i++ {
		h.Bonus(board.Queen, board.D8, delta)
	}
	if score := h.Get(board.Queen, board.D8); score > HistoryMax {
		t.Errorf("bonus overshoot: %d", score)
	}

	for i := 0; i < 400; i++ {
		h.Malus(board.Queen, board.D8, delta)
	}
	if score := h.Get(board.Queen, board.D8); score < -HistoryMax {
		t.Errorf("malus overshoot: %d", score)
	}
}

func TestHistoryDeltaClamp(t *testing.T) {
	if HistoryDelta(2) != 4 {
		t.Errorf("HistoryDelta(2) = %d, want 4", HistoryDelta(2))
	}
	if HistoryDelta(MaxDepth) > HistoryMax {
		t.Errorf("HistoryDelta(%d) = %d exceeds HistoryMax", MaxDepth, HistoryDelta(MaxDepth))
	}
}
