package engine

import (
	"math/bits"
	"sync/atomic"

	"github.com/pelicanchess/pelican/internal/board"
)

// ScoreType classifies a search score as exact or as a bound.
type ScoreType uint8

const (
	Exact ScoreType = iota
	LowerBound
	UpperBound
)

// TTEntry is one transposition table record. The five fields pack into a
// single 64-bit word, which is what makes lock-free sharing possible: a
// torn write cannot happen because each entry is one atomic cell, and a
// colliding entry is detected by the 16-bit key fragment.
type TTEntry struct {
	Key   uint16
	Move  board.Move
	Score int16
	Depth uint8
	Info  uint8
}

// ScoreType returns the bound kind stored in the info byte.
func (e TTEntry) ScoreType() ScoreType {
	switch e.Info & 0b11 {
	case 0:
		return Exact
	case 1:
		return LowerBound
	default:
		return UpperBound
	}
}

func (e TTEntry) pack() uint64 {
	return uint64(e.Key) |
		uint64(e.Move)<<16 |
		uint64(uint16(e.Score))<<32 |
		uint64(e.Depth)<<48 |
		uint64(e.Info)<<56
}

func unpackEntry(v uint64) TTEntry {
	return TTEntry{
		Key:   uint16(v),
		Move:  board.Move(v >> 16),
		Score: int16(v >> 32),
		Depth: uint8(v >> 48),
		Info:  uint8(v >> 56),
	}
}

// ScoreToTT makes mate scores ply-relative before storage so that mate
// distances stay comparable when the entry is read at a different ply.
func ScoreToTT(score, ply int) int16 {
	if score >= MinTbWinScore {
		return int16(score + ply)
	}
	if score <= -MinTbWinScore {
		return int16(score - ply)
	}
	return int16(score)
}

// ScoreFromTT undoes the ply adjustment applied by ScoreToTT.
func ScoreFromTT(score int16, ply int) int {
	s := int(score)
	if s >= MinTbWinScore {
		return s - ply
	}
	if s <= -MinTbWinScore {
		return s + ply
	}
	return s
}

// TT is the shared transposition table: a flat array of atomic 64-bit
// cells accessed with relaxed semantics. Replacement is always-replace.
type TT struct {
	entries []atomic.Uint64
}

// NewTT allocates a table of the given size in mebibytes.
func NewTT(sizeMB int) *TT {
	tt := &TT{}
	tt.Resize(sizeMB)
	return tt
}

// Resize reallocates the table. Existing entries are discarded.
func (tt *TT) Resize(sizeMB int) {
	tt.entries = make([]atomic.Uint64, sizeMB*1024*1024/8)
}

// Clear zeroes every entry.
func (tt *TT) Clear() {
	for i := range tt.entries {
		tt.entries[i].Store(0)
	}
}

// index maps a full hash onto the table with the fixed-point multiply
// trick: (key * N) >> 64 is a fair modulo without division.
func (tt *TT) index(key uint64) uint64 {
	hi, _ := bits.Mul64(key, uint64(len(tt.entries)))
	return hi
}

// Get probes the table. A hit requires the stored key fragment to match;
// anything else, including an entry torn by a colliding writer, reads as a
// miss.
func (tt *TT) Get(key uint64) (TTEntry, bool) {
	if len(tt.entries) == 0 {
		return TTEntry{}, false
	}
	entry := unpackEntry(tt.entries[tt.index(key)].Load())
	if entry.Key != uint16(key) || entry.pack() == 0 {
		return TTEntry{}, false
	}
	return entry, true
}

// Store writes an entry, unconditionally replacing whatever was there.
func (tt *TT) Store(key uint64, score int, scoreType ScoreType, bestMove board.Move, depth, ply int) {
	if len(tt.entries) == 0 {
		return
	}
	entry := TTEntry{
		Key:   uint16(key),
		Move:  bestMove,
		Score: ScoreToTT(score, ply),
		Depth: uint8(depth),
		Info:  uint8(scoreType) & 0b11,
	}
	tt.entries[tt.index(key)].Store(entry.pack())
}

// Fill samples the first 1000 entries and reports occupancy per mille, for
// the UCI hashfull report.
func (tt *TT) Fill() int {
	sample := 1000
	if len(tt.entries) < sample {
		sample = len(tt.entries)
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i].Load() != 0 {
			used++
		}
	}
	return used * 1000 / sample
}
