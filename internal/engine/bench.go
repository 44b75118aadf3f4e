package engine

import (
	"sync/atomic"
	"time"

	"github.com/pelicanchess/pelican/internal/board"
)

// BenchResult is the outcome of the fixed-depth self-check.
type BenchResult struct {
	Nodes uint64
	Nps   uint64
}

// benchDepth is the fixed depth of the bench search.
const benchDepth = 8

// RunBench searches the start position to a fixed depth on one thread with
// protocol output suppressed. With the stock options and a zero draw score
// the node count is identical on every run, which makes bench the
// regression fingerprint of the search.
func RunBench() BenchResult {
	var stopped atomic.Bool
	var globalNodes atomic.Uint64

	info := NewSearchInfo(&stopped, &globalNodes)
	info.Stdout = false
	info.TimeManager = NewTimeManager(time.Now()).FixedDepth(benchDepth, true)

	tt := NewTT(info.Options.Hash)
	t := NewThreadData(tt)

	root := board.New()
	t.PrepareSearch(root, nil)

	start := time.Now()
	Search(root, info, []*ThreadData{t})
	elapsed := uint64(time.Since(start).Milliseconds())
	if elapsed == 0 {
		elapsed = 1
	}

	nodes := globalNodes.Load()
	return BenchResult{Nodes: nodes, Nps: nodes * 1000 / elapsed}
}
