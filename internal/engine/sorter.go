package engine

import "github.com/pelicanchess/pelican/internal/board"

// mvvLva orders captures most-valuable-victim first, breaking ties by the
// least valuable attacker: the victim picks the decade, the attacker the
// position within it, so bishop-takes-queen sorts above rook-takes-queen.
var mvvLva = [6][6]int16{
	{15, 14, 13, 12, 11, 10}, // pawn victim
	{25, 24, 23, 22, 21, 20}, // knight victim
	{35, 34, 33, 32, 31, 30}, // bishop victim
	{45, 44, 43, 42, 41, 40}, // rook victim
	{55, 54, 53, 52, 51, 50}, // queen victim
	{0, 0, 0, 0, 0, 0},       // king victim (not possible)
}

// badNoisyScore pushes SEE-losing noisies below every SEE-winning noisy in
// the noisy list; the stage order then yields them after the quiets.
const badNoisyScore int16 = -10100

// Stage identifies which phase of the staged generator produced a move.
type Stage uint8

const (
	StageTTMove Stage = iota
	StageGenerateMoves
	StageGoodNoisies
	StageQuiets
	StageBadNoisies
)

// MoveSorter yields moves in search order without sorting whole lists up
// front: the TT hint first, then SEE-winning noisies by MVV/LVA, quiets by
// history, and finally the losing noisies. Stages only move forward.
type MoveSorter struct {
	ttMove     board.Move
	noisies    *board.MoveList
	noisyIndex int
	quiets     *board.MoveList
	quietIndex int
	stage      Stage
	noisyOnly  bool
}

// NewMoveSorter borrows the two move list buffers; they are filled when the
// generation stage runs.
func NewMoveSorter(ttMove board.Move, noisies, quiets *board.MoveList) MoveSorter {
	return MoveSorter{
		ttMove:  ttMove,
		noisies: noisies,
		quiets:  quiets,
		stage:   StageTTMove,
	}
}

// NoisyOnly restricts the sorter to the noisy stages (quiescence mode).
func (s MoveSorter) NoisyOnly() MoveSorter {
	s.noisyOnly = true
	return s
}

// Next yields the next move and the stage it came from. The TT move is
// never yielded twice: later stages skip it.
func (s *MoveSorter) Next(b *board.Board, t *ThreadData) (board.Move, Stage, bool) {
	if s.stage == StageTTMove {
		s.stage = StageGenerateMoves
		if !s.ttMove.IsNull() && b.IsPseudolegal(s.ttMove) {
			return s.ttMove, StageTTMove, true
		}
		s.ttMove = board.NullMove
	}

	if s.stage == StageGenerateMoves {
		s.stage = StageGoodNoisies
		b.GenerateMovesInto(s.noisies, s.quiets)
		s.scoreNoisies(b)
	}

	if s.stage == StageGoodNoisies {
		for {
			noisy, ok := s.noisies.Next(s.noisyIndex)
			if !ok {
				if s.noisyOnly {
					return board.NullMove, s.stage, false
				}
				s.stage = StageQuiets
				s.scoreQuiets(b, t)
				break
			}
			s.noisyIndex++
			if noisy.Move == s.ttMove {
				continue
			}
			// the first bad noisy goes back in the list; quiets run next
			if noisy.Score < 0 {
				s.noisyIndex--
				if s.noisyOnly {
					s.stage = StageBadNoisies
				} else {
					s.stage = StageQuiets
					s.scoreQuiets(b, t)
				}
				break
			}
			return noisy.Move, StageGoodNoisies, true
		}
	}

	if s.stage == StageQuiets {
		for {
			quiet, ok := s.quiets.Next(s.quietIndex)
			if !ok {
				s.stage = StageBadNoisies
				break
			}
			s.quietIndex++
			if quiet.Move == s.ttMove {
				continue
			}
			return quiet.Move, StageQuiets, true
		}
	}

	if s.stage == StageBadNoisies {
		for {
			noisy, ok := s.noisies.Next(s.noisyIndex)
			if !ok {
				break
			}
			s.noisyIndex++
			if noisy.Move == s.ttMove {
				continue
			}
			return noisy.Move, StageBadNoisies, true
		}
	}

	return board.NullMove, s.stage, false
}

func (s *MoveSorter) scoreNoisies(b *board.Board) {
	for i := range s.noisies.Entries() {
		entry := &s.noisies.Entries()[i]
		piece := b.PieceOn(entry.Move.From())
		capture := b.PieceOn(entry.Move.To())
		if capture == board.NoPiece {
			// promotions and en passant have no victim on the to square
			capture = board.Pawn
		}

		score := mvvLva[capture][piece]
		if !b.SeeBeatsThreshold(entry.Move, 0) {
			score += badNoisyScore
		}
		entry.Score = score
	}
}

func (s *MoveSorter) scoreQuiets(b *board.Board, t *ThreadData) {
	for i := range s.quiets.Entries() {
		entry := &s.quiets.Entries()[i]
		piece := b.PieceOn(entry.Move.From())
		entry.Score = t.History.Get(piece, entry.Move.To())
	}
}
