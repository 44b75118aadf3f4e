package engine

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/pelicanchess/pelican/internal/board"
	"github.com/pelicanchess/pelican/internal/nnue"
)

// Search score bounds.
const (
	MaxDepth      = 128
	MateScore     = 31000
	MinTbWinScore = 30000
	Inf           = 32000
)

// drawScore is the score of repetitions, stalemates, and the 50-move rule.
// Kept at exactly zero so single-threaded searches are deterministic.
const drawScore = 0

// lmrTable holds the precomputed logarithmic late-move reductions indexed
// by [depth][moves made], both capped at 63.
var lmrTable [64][64]int

func init() {
	for depth := 1; depth < 64; depth++ {
		for moves := 1; moves < 64; moves++ {
			lmrTable[depth][moves] = int(0.77 + math.Log(float64(depth))*math.Log(float64(moves))/2.36)
		}
	}
}

// Search runs the full parallel search on the position and returns the
// best thread's score and move. threads[0] is the main thread; the rest
// run the same iterative deepening as helpers sharing the stop flag,
// global node counter, and transposition table.
func Search(b *board.Board, info *SearchInfo, threads []*ThreadData) (int, board.Move) {
	legals := b.LegalMoves()
	if len(legals) == 0 {
		return 0, board.NullMove
	}

	info.GlobalNodes.Store(0)
	info.Seldepth = 0

	for _, t := range threads {
		t.PV.Clear()
		t.RootScore = 0
		t.DepthReached = 0
	}

	var group errgroup.Group
	for _, t := range threads[1:] {
		t := t
		helperBoard := *b
		helperInfo := *info
		group.Go(func() error {
			iterativeDeepening(&helperBoard, &helperInfo, t, false)
			return nil
		})
	}

	iterativeDeepening(b, info, threads[0], true)
	info.Stop()
	_ = group.Wait()

	// elect the best thread: deepest first, highest score within a depth
	best := threads[0]
	for _, t := range threads[1:] {
		if t.DepthReached == best.DepthReached && t.RootScore > best.RootScore {
			best = t
		}
		if t.DepthReached > best.DepthReached {
			best = t
		}
	}

	bestMove, ok := best.PV.First()
	if !ok {
		bestMove = legals[0]
	}

	if info.Stdout {
		fmt.Printf("bestmove %s\n", bestMove.Coords())
	}

	return best.RootScore, bestMove
}

func iterativeDeepening(b *board.Board, info *SearchInfo, t *ThreadData, mainThread bool) {
	window := FullWindow()
	for depth := 1; depth < MaxDepth; depth++ {
		if depth > 1 {
			window = NewWindowAround(t.RootScore, info.Options.AspWindowInit)
		}

		var pv PrincipalVariation
		score := aspirationWindow(b, &pv, info, t, &window, depth, mainThread)

		// hard time or node abort partway through: results from a partial
		// search cannot be trusted, but the report keeps node statistics
		// accurate
		if info.IsStopped() {
			info.PrintDepthReport(t, depth, mainThread)
			break
		}

		t.RootScore = score
		t.DepthReached = depth
		t.PV = pv

		info.PrintDepthReport(t, depth, mainThread)

		// the depth condition applies to every thread
		if info.TimeManager.DepthLimitReached(depth) {
			break
		}

		// time and node conditions are checked by the main thread, which
		// then stops the helpers
		if mainThread &&
			(info.TimeManager.SoftTimeLimitReached() ||
				info.TimeManager.NodeLimitReached(info.GlobalNodeCount())) {
			info.Stop()
			break
		}
	}
	info.FlushNodes()
}

func aspirationWindow(b *board.Board, pv *PrincipalVariation, info *SearchInfo, t *ThreadData, window *AspirationWindow, depth int, mainThread bool) int {
	for {
		score := negamax(b, pv, info, t, window.Lower, window.Upper, depth, 0, true, mainThread)

		if info.IsStopped() {
			return -Inf
		}

		scoreType := window.Test(score)
		switch scoreType {
		case UpperBound:
			window.ExpandDown(info.Options.AspWindowScalePct)
		case LowerBound:
			window.ExpandUp(info.Options.AspWindowScalePct)
		case Exact:
			return score
		}

		info.PrintAwFailReport(t, depth, score, scoreType, mainThread)
	}
}

// negamax is the principal-variation search. root and mainThread stand in
// for the Root/NonRoot and MainThread/Helper type parameters of the
// design: root gates the 50-move draw check, the TT cutoff, and the
// pruning and reduction steps (the repetition check runs at the root too);
// mainThread gates limit polling.
func negamax(b *board.Board, pv *PrincipalVariation, info *SearchInfo, t *ThreadData, alpha, beta, depth, ply int, root, mainThread bool) int {
	if depth <= 0 {
		return quiesce(b, pv, info, t, alpha, beta, ply, mainThread)
	}

	// publish nodes every 1024 and poll the hard limits on the main thread
	if info.IncNodes() && mainThread &&
		(info.TimeManager.NodeLimitReached(info.GlobalNodeCount()) ||
			info.TimeManager.HardTimeLimitReached()) {
		info.Stop()
		return -Inf
	}

	if info.IsStopped() {
		pv.Clear()
		return 0
	}

	if ply >= MaxDepth-1 {
		return t.evaluate(b, ply)
	}

	if ply+1 > info.Seldepth {
		info.Seldepth = ply + 1
	}

	if !root && b.HalfmoveClock >= 100 {
		pv.Clear()
		return drawScore
	}

	// repetition applies at the root too: a game already standing on a
	// repeated position scores as a draw
	if t.isRepetition(b) {
		pv.Clear()
		return drawScore
	}

	pvNode := alpha != beta-1

	ttMove := board.NullMove
	entry, ttHit := t.TT.Get(b.Hash)
	if ttHit {
		ttMove = entry.Move
		ttScore := ScoreFromTT(entry.Score, ply)
		if !root && !pvNode && int(entry.Depth) >= depth &&
			boundCompatible(entry.ScoreType(), ttScore, alpha, beta) {
			return ttScore
		}
	}

	// internal iterative reduction: without a usefully deep TT entry, move
	// ordering is poor; a shallower search fills the table instead
	if !root && !pvNode && depth >= info.Options.IirMinDepth &&
		(!ttHit || int(entry.Depth) < depth-info.Options.IirTtDepthMargin) {
		depth--
	}

	inCheck := b.InCheck()

	eval := -Inf
	if !inCheck {
		eval = t.evaluate(b, ply)
		// an applicable TT score is a better estimate than the raw eval
		if ttHit {
			ttScore := ScoreFromTT(entry.Score, ply)
			if boundCompatible(entry.ScoreType(), ttScore, eval, eval) {
				eval = ttScore
			}
		}
	}
	t.Evals[ply] = eval

	// reverse futility pruning
	if !root && !pvNode && !inCheck && depth < info.Options.RfpMaxDepth &&
		eval-depth*info.Options.RfpMargin >= beta {
		return eval - depth*info.Options.RfpMargin
	}

	// null-move pruning: if passing the move still beats beta, the real
	// position almost certainly does too. The latch prevents two null
	// moves in a row, and pawn-only endgames are exempt (zugzwang).
	if !root && !pvNode && !inCheck && t.NmpEnabled &&
		depth >= info.Options.NmpMinDepth && b.HasNonPawnMaterial() {
		r := info.Options.NmpRConst + depth/info.Options.NmpRDepthDivisor

		nullBoard := *b
		nullBoard.MakeNullMove()
		t.Accumulators[ply+1] = t.Accumulators[ply]
		t.pushHistory(b.Hash)
		t.NmpEnabled = false

		var line PrincipalVariation
		score := -negamax(&nullBoard, &line, info, t, -beta, -beta+1, depth-r, ply+1, false, mainThread)

		t.NmpEnabled = true
		t.popHistory()

		if info.IsStopped() {
			pv.Clear()
			return 0
		}

		if score >= beta {
			if score >= MinTbWinScore {
				score = beta
			}
			return score
		}
	}

	var noisy, quiet board.MoveList
	sorter := NewMoveSorter(ttMove, &noisy, &quiet)

	oldAlpha := alpha
	bestScore := -Inf
	bestMove := board.NullMove
	movesMade := 0

	var quietsTried [maxQuietsTracked]board.Move
	numQuietsTried := 0

	t.pushHistory(b.Hash)

	for {
		mv, _, ok := sorter.Next(b, t)
		if !ok {
			break
		}

		isQuiet := isQuietMove(b, mv)

		// SEE pruning: once something works, late moves losing too much
		// material at shallow depth are not worth trying
		if !root && bestScore > -MinTbWinScore && movesMade > 0 &&
			depth <= info.Options.SeePruningMaxDepth {
			margin := info.Options.SeeQuietMargin
			if !isQuiet {
				margin = info.Options.SeeCaptureMargin
			}
			if !b.SeeBeatsThreshold(mv, margin*depth) {
				continue
			}
		}

		next := *b
		var updates nnue.MoveUpdates
		if !next.MakeMoveWithUpdates(mv, &updates) {
			continue
		}
		t.Accumulators[ply].Apply(t.Net, &t.Accumulators[ply+1], updates)
		movesMade++

		if isQuiet && numQuietsTried < maxQuietsTracked {
			quietsTried[numQuietsTried] = mv
			numQuietsTried++
		}

		var line PrincipalVariation
		var score int

		if movesMade == 1 {
			score = -negamax(&next, &line, info, t, -beta, -alpha, depth-1, ply+1, false, mainThread)
		} else {
			// late move reductions for quiet non-promotions; everything
			// else gets the plain zero-window search
			r := 0
			if isQuiet && mv.Promo() == board.NoPiece {
				r = lmrTable[min(depth, 63)][min(movesMade, 63)]
			}

			score = -negamax(&next, &line, info, t, -alpha-1, -alpha, depth-1-r, ply+1, false, mainThread)

			// a reduced search that beats alpha must be verified at full
			// depth before it is believed
			if score > alpha && r > 0 {
				score = -negamax(&next, &line, info, t, -alpha-1, -alpha, depth-1, ply+1, false, mainThread)
			}

			if pvNode && score > alpha && score < beta {
				score = -negamax(&next, &line, info, t, -beta, -alpha, depth-1, ply+1, false, mainThread)
			}
		}

		if info.IsStopped() {
			t.popHistory()
			pv.Clear()
			return 0
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				bestMove = mv
				pv.UpdateWith(mv, &line)
			}
			if alpha >= beta {
				break
			}
		}
	}

	t.popHistory()

	if movesMade == 0 {
		pv.Clear()
		if inCheck {
			return -(MateScore - ply)
		}
		return drawScore
	}

	bestScore = clampScore(bestScore)

	// a new best quiet move earns a history bonus, every other quiet tried
	// at this node takes the matching malus
	if alpha != oldAlpha && !bestMove.IsNull() && isQuietMove(b, bestMove) {
		delta := HistoryDelta(depth)
		piece := b.PieceOn(bestMove.From())
		t.History.Bonus(piece, bestMove.To(), delta)
		for i := 0; i < numQuietsTried; i++ {
			if quietsTried[i] == bestMove {
				continue
			}
			t.History.Malus(b.PieceOn(quietsTried[i].From()), quietsTried[i].To(), delta)
		}
	}

	scoreType := UpperBound
	if bestScore >= beta {
		scoreType = LowerBound
	} else if alpha != oldAlpha {
		scoreType = Exact
	}
	t.TT.Store(b.Hash, bestScore, scoreType, bestMove, depth, ply)

	return bestScore
}

func quiesce(b *board.Board, pv *PrincipalVariation, info *SearchInfo, t *ThreadData, alpha, beta, ply int, mainThread bool) int {
	if info.IncNodes() && mainThread &&
		(info.TimeManager.NodeLimitReached(info.GlobalNodeCount()) ||
			info.TimeManager.HardTimeLimitReached()) {
		info.Stop()
		return -Inf
	}

	if info.IsStopped() {
		pv.Clear()
		return 0
	}

	if ply >= MaxDepth-1 {
		return t.evaluate(b, ply)
	}

	if ply+1 > info.Seldepth {
		info.Seldepth = ply + 1
	}

	inCheck := b.InCheck()

	ttMove := board.NullMove
	if entry, ok := t.TT.Get(b.Hash); ok {
		ttMove = entry.Move
		ttScore := ScoreFromTT(entry.Score, ply)
		if boundCompatible(entry.ScoreType(), ttScore, alpha, beta) {
			return ttScore
		}
	}

	staticEval := t.evaluate(b, ply)

	// stand pat: the opponent will not walk into a position this good
	if staticEval >= beta && !inCheck {
		pv.Clear()
		return staticEval
	}

	if staticEval > alpha {
		alpha = staticEval
	}
	oldAlpha := alpha

	var noisy, quiet board.MoveList
	sorter := NewMoveSorter(ttMove, &noisy, &quiet).NoisyOnly()

	bestScore := staticEval
	bestMove := board.NullMove
	movesMade := 0

	for {
		mv, stage, ok := sorter.Next(b, t)
		if !ok {
			break
		}
		// SEE-losing captures are skipped wholesale
		if stage == StageBadNoisies {
			break
		}

		next := *b
		var updates nnue.MoveUpdates
		if !next.MakeMoveWithUpdates(mv, &updates) {
			continue
		}
		t.Accumulators[ply].Apply(t.Net, &t.Accumulators[ply+1], updates)
		movesMade++

		var line PrincipalVariation
		score := -quiesce(&next, &line, info, t, -beta, -alpha, ply+1, mainThread)

		if info.IsStopped() {
			pv.Clear()
			return 0
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				bestMove = mv
				pv.UpdateWith(mv, &line)
			}
			if alpha >= beta {
				break
			}
		}
	}

	if movesMade == 0 {
		pv.Clear()
		// only a position with no pseudo-legal moves at all is mate or
		// stalemate; running out of noisies is normal
		if noisy.Len()+quiet.Len() == 0 {
			if inCheck {
				return -(MateScore - ply)
			}
			return drawScore
		}
	}

	bestScore = clampScore(bestScore)

	scoreType := UpperBound
	if bestScore >= beta {
		scoreType = LowerBound
	} else if alpha != oldAlpha {
		scoreType = Exact
	}
	t.TT.Store(b.Hash, bestScore, scoreType, bestMove, 0, ply)

	return bestScore
}

// maxQuietsTracked bounds the quiet moves remembered for the history malus.
const maxQuietsTracked = 64

// boundCompatible reports whether a stored score of the given kind proves
// a cutoff against the (alpha, beta) window.
func boundCompatible(scoreType ScoreType, score, alpha, beta int) bool {
	switch scoreType {
	case Exact:
		return true
	case LowerBound:
		return score >= beta
	default:
		return score <= alpha
	}
}

// isQuietMove reports whether mv neither captures nor promotes on the
// current board.
func isQuietMove(b *board.Board, mv board.Move) bool {
	if mv.IsEnPassant() || mv.Promo() != board.NoPiece {
		return false
	}
	return b.Occupied[b.Player.Other()]&board.SquareBB(mv.To()) == 0
}

func clampScore(score int) int {
	if score > MateScore {
		return MateScore
	}
	if score < -MateScore {
		return -MateScore
	}
	return score
}
