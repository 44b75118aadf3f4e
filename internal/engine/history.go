package engine

import (
	"math"

	"github.com/pelicanchess/pelican/internal/board"
)

// HistoryMax bounds history scores; the gravity update formulas keep every
// entry inside [-HistoryMax, HistoryMax].
const HistoryMax = math.MaxInt16 / 2

// HistoryTable is the quiet-move history heuristic, indexed by the moving
// piece and its destination square.
type HistoryTable [6][64]int16

// Get returns the history score for a piece-to pair.
func (h *HistoryTable) Get(piece board.Piece, to board.Square) int16 {
	return h[piece][to]
}

// Clear resets the table.
func (h *HistoryTable) Clear() {
	*h = HistoryTable{}
}

// Bonus applies the gravity-weighted bonus s += d - d*s/max: large scores
// saturate instead of growing without bound.
func (h *HistoryTable) Bonus(piece board.Piece, to board.Square, delta int16) {
	s := int32(h[piece][to])
	d := int32(delta)
	h[piece][to] = int16(s + d - d*s/HistoryMax)
}

// Malus applies the symmetric penalty s -= d + d*s/max.
func (h *HistoryTable) Malus(piece board.Piece, to board.Square, delta int16) {
	s := int32(h[piece][to])
	d := int32(delta)
	h[piece][to] = int16(s - d - d*s/HistoryMax)
}

// HistoryDelta is the depth-squared update magnitude.
func HistoryDelta(depth int) int16 {
	d := depth * depth
	if d > HistoryMax {
		d = HistoryMax
	}
	return int16(d)
}
