package engine

import (
	"strings"

	"github.com/pelicanchess/pelican/internal/board"
	"github.com/pelicanchess/pelican/internal/nnue"
)

// PrincipalVariation is the move sequence the search expects to be played.
type PrincipalVariation struct {
	moves [MaxDepth]board.Move
	len   int
}

// UpdateWith sets the line to mv followed by the child's line.
func (pv *PrincipalVariation) UpdateWith(mv board.Move, rest *PrincipalVariation) {
	pv.moves[0] = mv
	copy(pv.moves[1:], rest.moves[:rest.len])
	pv.len = rest.len + 1
}

// Clear empties the line.
func (pv *PrincipalVariation) Clear() {
	pv.len = 0
}

// First returns the first move of the line.
func (pv *PrincipalVariation) First() (board.Move, bool) {
	if pv.len == 0 {
		return board.NullMove, false
	}
	return pv.moves[0], true
}

// Moves returns the line as a slice.
func (pv *PrincipalVariation) Moves() []board.Move {
	return pv.moves[:pv.len]
}

// String joins the line in UCI coordinates.
func (pv *PrincipalVariation) String() string {
	coords := make([]string, pv.len)
	for i, mv := range pv.moves[:pv.len] {
		coords[i] = mv.Coords()
	}
	return strings.Join(coords, " ")
}

// ThreadData is the exclusively-owned state of one search worker. Only the
// transposition table behind TT is shared.
type ThreadData struct {
	// Accumulators is the per-ply accumulator stack; entry ply+1 is always
	// derived from entry ply, so the two never alias during an update.
	Accumulators [MaxDepth]nnue.Accumulator

	History HistoryTable

	PV           PrincipalVariation
	RootScore    int
	DepthReached int

	// SearchHistory holds the Zobrist keys of the game prehistory followed
	// by the keys pushed during the current line, for repetition detection.
	SearchHistory []uint64
	prehistoryLen int

	// Evals caches the static evaluation per ply.
	Evals [MaxDepth]int

	// NmpEnabled blocks immediate re-application of null-move pruning.
	NmpEnabled bool

	TT  *TT
	Net *nnue.Network
}

// NewThreadData creates a worker bound to the shared table.
func NewThreadData(tt *TT) *ThreadData {
	return &ThreadData{
		TT:         tt,
		Net:        nnue.Default,
		NmpEnabled: true,
	}
}

// PrepareSearch installs the root position: the game prehistory (the hashes
// of every position before the current one, current excluded) is copied,
// accumulator zero is refreshed from scratch, and per-search state resets.
// The history table intentionally survives between searches.
func (t *ThreadData) PrepareSearch(b *board.Board, prehistory []uint64) {
	t.SearchHistory = t.SearchHistory[:0]
	t.SearchHistory = append(t.SearchHistory, prehistory...)
	t.prehistoryLen = len(prehistory)

	b.RefreshAccumulator(t.Net, &t.Accumulators[0])

	t.PV.Clear()
	t.RootScore = 0
	t.DepthReached = 0
	t.NmpEnabled = true
}

// NewGame clears everything learned from previous games.
func (t *ThreadData) NewGame() {
	t.History.Clear()
	t.SearchHistory = t.SearchHistory[:0]
	t.prehistoryLen = 0
	t.PV.Clear()
	t.RootScore = 0
	t.DepthReached = 0
}

func (t *ThreadData) pushHistory(hash uint64) {
	t.SearchHistory = append(t.SearchHistory, hash)
}

func (t *ThreadData) popHistory() {
	t.SearchHistory = t.SearchHistory[:len(t.SearchHistory)-1]
}

// isRepetition walks the history backwards two plies at a time, at most
// halfmove-clock entries deep: one earlier occurrence of the current hash
// means the position repeated and scores as a draw.
func (t *ThreadData) isRepetition(b *board.Board) bool {
	limit := len(t.SearchHistory) - int(b.HalfmoveClock)
	if limit < 0 {
		limit = 0
	}
	for i := len(t.SearchHistory) - 2; i >= limit; i -= 2 {
		if t.SearchHistory[i] == b.Hash {
			return true
		}
	}
	return false
}

// evaluate runs the network on the side-to-move accumulator, clamping the
// result inside the tablebase-win bounds.
func (t *ThreadData) evaluate(b *board.Board, ply int) int {
	var vals *[nnue.HiddenSize]int16
	if b.Player == board.White {
		vals = &t.Accumulators[ply].White
	} else {
		vals = &t.Accumulators[ply].Black
	}
	eval := t.Net.Evaluate(vals)

	if eval <= -MinTbWinScore {
		eval = -MinTbWinScore + 1
	} else if eval >= MinTbWinScore {
		eval = MinTbWinScore - 1
	}
	return eval
}
