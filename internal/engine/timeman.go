package engine

import "time"

// TimeOptions are the clock-arithmetic percentages from SearchOptions.
type TimeOptions struct {
	// HardTimePercent is the share of remaining time the search may burn
	// before aborting mid-depth.
	HardTimePercent int64
	// SoftTimePercent is the share after which no new depth is started.
	SoftTimePercent int64
	// IncPercent is the share of the increment counted as usable time.
	IncPercent int64
}

// TimeData carries the raw clock values from the go command, milliseconds.
type TimeData struct {
	StmTime   int64
	NtmTime   int64
	StmInc    int64
	NtmInc    int64
	MovesToGo int
}

// TimeManager decides when a search must stop. Limits that are not set are
// simply never reached; `infinite` clears everything.
type TimeManager struct {
	startTime time.Time

	hardTime    time.Duration
	hasHardTime bool
	softTime    time.Duration
	hasSoftTime bool

	depthLimit int
	nodeLimit  uint64
}

// NewTimeManager starts an unlimited manager from the given instant.
func NewTimeManager(start time.Time) TimeManager {
	return TimeManager{startTime: start}
}

// TimeLimited installs clock-based hard and soft budgets.
func (tm TimeManager) TimeLimited(data TimeData, options TimeOptions) TimeManager {
	hard := (data.StmTime*options.HardTimePercent + data.StmInc*options.IncPercent) / 100
	// never below a tenth of the clock: keeps the engine responsive at low
	// time with a large increment; never negative
	if hard < data.StmTime/10 {
		hard = data.StmTime / 10
	}
	if hard < 0 {
		hard = 0
	}
	tm.hardTime = time.Duration(hard) * time.Millisecond
	tm.hasHardTime = true

	soft := (data.StmTime*options.SoftTimePercent + data.StmInc*options.IncPercent) / 100
	if soft < 0 {
		soft = 0
	}
	tm.softTime = time.Duration(soft) * time.Millisecond
	tm.hasSoftTime = true

	if data.MovesToGo > 0 {
		soft = data.StmTime / int64(data.MovesToGo)
		if soft < 0 {
			soft = 0
		}
		tm.softTime = time.Duration(soft) * time.Millisecond
	}

	return tm
}

// FixedTimeMillis installs a movetime hard limit and disables the soft one.
func (tm TimeManager) FixedTimeMillis(millis int64, ok bool) TimeManager {
	if ok {
		tm.hardTime = time.Duration(millis) * time.Millisecond
		tm.hasHardTime = true
		tm.hasSoftTime = false
	}
	return tm
}

// FixedDepth installs a depth limit and disables the time limits.
func (tm TimeManager) FixedDepth(depth int, ok bool) TimeManager {
	if ok {
		tm.depthLimit = depth
		tm.hasHardTime = false
		tm.hasSoftTime = false
	}
	return tm
}

// FixedNodes installs a node limit and disables the time limits.
func (tm TimeManager) FixedNodes(nodes uint64, ok bool) TimeManager {
	if ok {
		tm.nodeLimit = nodes
		tm.hasHardTime = false
		tm.hasSoftTime = false
	}
	return tm
}

// Infinite clears all limits.
func (tm TimeManager) Infinite(infinite bool) TimeManager {
	if infinite {
		tm.hasHardTime = false
		tm.hasSoftTime = false
		tm.depthLimit = 0
		tm.nodeLimit = 0
	}
	return tm
}

// Elapsed returns the time since the search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// DepthLimitReached reports whether the completed depth hits the limit.
func (tm *TimeManager) DepthLimitReached(depth int) bool {
	return tm.depthLimit > 0 && depth >= tm.depthLimit
}

// NodeLimitReached reports whether the node budget is spent.
func (tm *TimeManager) NodeLimitReached(nodes uint64) bool {
	return tm.nodeLimit > 0 && nodes >= tm.nodeLimit
}

// SoftTimeLimitReached reports whether a new depth should not be started.
func (tm *TimeManager) SoftTimeLimitReached() bool {
	return tm.hasSoftTime && tm.Elapsed() >= tm.softTime
}

// HardTimeLimitReached reports whether the search must abort immediately.
func (tm *TimeManager) HardTimeLimitReached() bool {
	return tm.hasHardTime && tm.Elapsed() >= tm.hardTime
}
