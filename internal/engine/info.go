package engine

import (
	"fmt"
	"sync/atomic"
)

// maxLocalNodes is the batching interval for publishing node counts and
// polling limits: the stop flag is observed within 1024 nodes.
const maxLocalNodes = 1024

// SearchInfo carries the shared control state of a search plus per-thread
// counters. Helper threads receive a value copy; the pointers inside stay
// shared.
type SearchInfo struct {
	TimeManager TimeManager

	// Stopped is the cooperative cancellation flag shared by all workers.
	Stopped *atomic.Bool

	// Quit, when set, is the process-wide quit flag; it cancels through
	// the same stop path.
	Quit *atomic.Bool

	// GlobalNodes accumulates node counts from every worker.
	GlobalNodes *atomic.Uint64

	localNodes uint64
	nodeBuffer uint64

	Seldepth int

	// Stdout gates all protocol printing; bench and tests turn it off.
	Stdout bool

	Options SearchOptions
}

// NewSearchInfo wires the shared flag and counter.
func NewSearchInfo(stopped *atomic.Bool, globalNodes *atomic.Uint64) *SearchInfo {
	return &SearchInfo{
		Stopped:     stopped,
		GlobalNodes: globalNodes,
		Stdout:      true,
		Options:     DefaultOptions(),
	}
}

// IncNodes counts one node, publishing to the global counter every 1024
// nodes. Returns true exactly when a batch was flushed, which is when the
// caller should poll the time and node limits.
func (info *SearchInfo) IncNodes() bool {
	info.nodeBuffer++
	if info.nodeBuffer >= maxLocalNodes {
		info.GlobalNodes.Add(info.nodeBuffer)
		info.localNodes += info.nodeBuffer
		info.nodeBuffer = 0
		return true
	}
	return false
}

// FlushNodes publishes any buffered count, keeping bench totals exact.
func (info *SearchInfo) FlushNodes() {
	info.GlobalNodes.Add(info.nodeBuffer)
	info.localNodes += info.nodeBuffer
	info.nodeBuffer = 0
}

// GlobalNodeCount returns the shared count plus this thread's buffer.
func (info *SearchInfo) GlobalNodeCount() uint64 {
	return info.GlobalNodes.Load() + info.nodeBuffer
}

// IsStopped reports whether the search was cancelled, either by the stop
// flag or by a process-wide quit.
func (info *SearchInfo) IsStopped() bool {
	if info.Stopped.Load() {
		return true
	}
	return info.Quit != nil && info.Quit.Load()
}

// Stop cancels the search for every worker.
func (info *SearchInfo) Stop() {
	info.Stopped.Store(true)
}

// scoreString formats a score as `cp <n>` or `mate <±n>`.
func scoreString(score int) string {
	matePlies := MateScore - abs(score)
	if matePlies <= MaxDepth {
		sign := ""
		if score < 0 {
			sign = "-"
		}
		return fmt.Sprintf("mate %s%d", sign, (matePlies+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// PrintDepthReport emits the info line after a completed depth. Only the
// main thread reports.
func (info *SearchInfo) PrintDepthReport(t *ThreadData, depth int, mainThread bool) {
	if !mainThread || !info.Stdout {
		return
	}

	nodes := info.GlobalNodeCount()
	elapsed := uint64(info.TimeManager.Elapsed().Milliseconds())
	if elapsed == 0 {
		elapsed = 1
	}
	nps := nodes * 1000 / elapsed

	fmt.Printf("info depth %d seldepth %d score %s nodes %d nps %d hashfull %d time %d pv %s\n",
		depth, info.Seldepth, scoreString(t.RootScore), nodes, nps, t.TT.Fill(), elapsed, &t.PV)
}

// PrintAwFailReport emits the intermediate info line after an aspiration
// window failure, tagged with the bound direction.
func (info *SearchInfo) PrintAwFailReport(t *ThreadData, depth, score int, scoreType ScoreType, mainThread bool) {
	if !mainThread || !info.Stdout {
		return
	}

	bound := ""
	switch scoreType {
	case LowerBound:
		bound = " lowerbound"
	case UpperBound:
		bound = " upperbound"
	}

	nodes := info.GlobalNodeCount()
	elapsed := uint64(info.TimeManager.Elapsed().Milliseconds())
	if elapsed == 0 {
		elapsed = 1
	}
	nps := nodes * 1000 / elapsed

	fmt.Printf("info depth %d seldepth %d score %s%s nodes %d nps %d hashfull %d time %d pv %s\n",
		depth, info.Seldepth, scoreString(score), bound, nodes, nps, t.TT.Fill(), elapsed, &t.PV)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
