package engine

// AspirationWindow is a narrow (alpha, beta) interval around the previous
// root score. Failures widen the failing side geometrically.
type AspirationWindow struct {
	Lower int
	Upper int
	mid   int
}

// FullWindow returns the unbounded window used at depth 1.
func FullWindow() AspirationWindow {
	return AspirationWindow{Lower: -Inf, Upper: Inf}
}

// NewWindowAround centers a window of the given half-width on mid.
func NewWindowAround(mid, halfWidth int) AspirationWindow {
	return AspirationWindow{
		Lower: saturate(mid - halfWidth),
		Upper: saturate(mid + halfWidth),
		mid:   mid,
	}
}

// Test classifies a score against the window.
func (w *AspirationWindow) Test(score int) ScoreType {
	if score <= w.Lower {
		return UpperBound
	}
	if score >= w.Upper {
		return LowerBound
	}
	return Exact
}

// ExpandDown widens the lower bound by scalePercent (an integer >= 101).
func (w *AspirationWindow) ExpandDown(scalePercent int) {
	diff := w.mid - w.Lower
	w.Lower = saturate(w.mid - diff*scalePercent/100)
}

// ExpandUp widens the upper bound by scalePercent.
func (w *AspirationWindow) ExpandUp(scalePercent int) {
	diff := w.Upper - w.mid
	w.Upper = saturate(w.mid + diff*scalePercent/100)
}

func saturate(score int) int {
	if score > Inf {
		return Inf
	}
	if score < -Inf {
		return -Inf
	}
	return score
}
