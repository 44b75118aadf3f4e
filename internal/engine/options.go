package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchOptions holds every UCI-tunable parameter with its legal range.
type SearchOptions struct {
	Threads              int
	Hash                 int
	AspWindowInit        int
	AspWindowScalePct    int
	HardTimePercent      int64
	SoftTimePercent      int64
	IncPercent           int64
	NmpMinDepth          int
	NmpRConst            int
	NmpRDepthDivisor     int
	RfpMaxDepth          int
	RfpMargin            int
	IirMinDepth          int
	IirTtDepthMargin     int
	SeePruningMaxDepth   int
	SeeCaptureMargin     int
	SeeQuietMargin       int
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() SearchOptions {
	return SearchOptions{
		Threads:            1,
		Hash:               8,
		AspWindowInit:      40,
		AspWindowScalePct:  200,
		HardTimePercent:    50,
		SoftTimePercent:    5,
		IncPercent:         50,
		NmpMinDepth:        1,
		NmpRConst:          3,
		NmpRDepthDivisor:   3,
		RfpMaxDepth:        16,
		RfpMargin:          38,
		IirMinDepth:        4,
		IirTtDepthMargin:   128, // effectively disables the TT depth margin
		SeePruningMaxDepth: 10,
		SeeCaptureMargin:   -54,
		SeeQuietMargin:     -45,
	}
}

// TimeOptions extracts the clock-arithmetic percentages.
func (o *SearchOptions) TimeOptions() TimeOptions {
	return TimeOptions{
		HardTimePercent: o.HardTimePercent,
		SoftTimePercent: o.SoftTimePercent,
		IncPercent:      o.IncPercent,
	}
}

// optionSpec drives both the `uci` option listing and setoption validation.
type optionSpec struct {
	name     string
	min, max int
	get      func(*SearchOptions) int
	set      func(*SearchOptions, int)
}

var optionSpecs = []optionSpec{
	{"Threads", 1, 999,
		func(o *SearchOptions) int { return o.Threads },
		func(o *SearchOptions, v int) { o.Threads = v }},
	{"Hash", 0, 999999,
		func(o *SearchOptions) int { return o.Hash },
		func(o *SearchOptions, v int) { o.Hash = v }},
	{"AspWindowInit", 1, Inf,
		func(o *SearchOptions) int { return o.AspWindowInit },
		func(o *SearchOptions, v int) { o.AspWindowInit = v }},
	{"AspWindowScalePercent", 101, 999,
		func(o *SearchOptions) int { return o.AspWindowScalePct },
		func(o *SearchOptions, v int) { o.AspWindowScalePct = v }},
	{"HardTimePercent", 1, 100,
		func(o *SearchOptions) int { return int(o.HardTimePercent) },
		func(o *SearchOptions, v int) { o.HardTimePercent = int64(v) }},
	{"SoftTimePercent", 1, 100,
		func(o *SearchOptions) int { return int(o.SoftTimePercent) },
		func(o *SearchOptions, v int) { o.SoftTimePercent = int64(v) }},
	{"IncPercent", 1, 100,
		func(o *SearchOptions) int { return int(o.IncPercent) },
		func(o *SearchOptions, v int) { o.IncPercent = int64(v) }},
	{"NmpMinDepth", 1, MaxDepth,
		func(o *SearchOptions) int { return o.NmpMinDepth },
		func(o *SearchOptions, v int) { o.NmpMinDepth = v }},
	{"NmpReductionConst", 1, MaxDepth,
		func(o *SearchOptions) int { return o.NmpRConst },
		func(o *SearchOptions, v int) { o.NmpRConst = v }},
	{"NmpReductionDepthDivisor", 1, MaxDepth,
		func(o *SearchOptions) int { return o.NmpRDepthDivisor },
		func(o *SearchOptions, v int) { o.NmpRDepthDivisor = v }},
	{"RfpMaxDepth", 1, MaxDepth,
		func(o *SearchOptions) int { return o.RfpMaxDepth },
		func(o *SearchOptions, v int) { o.RfpMaxDepth = v }},
	{"RfpMargin", 1, Inf,
		func(o *SearchOptions) int { return o.RfpMargin },
		func(o *SearchOptions, v int) { o.RfpMargin = v }},
	{"IirMinDepth", 1, MaxDepth,
		func(o *SearchOptions) int { return o.IirMinDepth },
		func(o *SearchOptions, v int) { o.IirMinDepth = v }},
	{"IirTtDepthMargin", 1, MaxDepth,
		func(o *SearchOptions) int { return o.IirTtDepthMargin },
		func(o *SearchOptions, v int) { o.IirTtDepthMargin = v }},
	{"SeePruningMaxDepth", 1, MaxDepth,
		func(o *SearchOptions) int { return o.SeePruningMaxDepth },
		func(o *SearchOptions, v int) { o.SeePruningMaxDepth = v }},
	{"SeeCaptureMargin", -100, 100,
		func(o *SearchOptions) int { return o.SeeCaptureMargin },
		func(o *SearchOptions, v int) { o.SeeCaptureMargin = v }},
	{"SeeQuietMargin", -100, 100,
		func(o *SearchOptions) int { return o.SeeQuietMargin },
		func(o *SearchOptions, v int) { o.SeeQuietMargin = v }},
}

// OptionLines returns the `option name ...` lines for the uci handshake.
func (o *SearchOptions) OptionLines() []string {
	lines := make([]string, 0, len(optionSpecs))
	for _, spec := range optionSpecs {
		lines = append(lines, fmt.Sprintf(
			"option name %s type spin default %d min %d max %d",
			spec.name, spec.get(o), spec.min, spec.max))
	}
	return lines
}

// Set applies a setoption value. Unknown names and out-of-range values
// return an error and leave the options untouched.
func (o *SearchOptions) Set(name, value string) error {
	for _, spec := range optionSpecs {
		if !strings.EqualFold(spec.name, name) {
			continue
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("option %s needs an integer value, got %q", spec.name, value)
		}
		if v < spec.min || v > spec.max {
			return fmt.Errorf("option %s value %d out of range [%d, %d]", spec.name, v, spec.min, spec.max)
		}
		spec.set(o, v)
		return nil
	}
	return fmt.Errorf("unknown option %q", name)
}

// Names returns the option names and current values, for persistence.
func (o *SearchOptions) Names() map[string]int {
	values := make(map[string]int, len(optionSpecs))
	for _, spec := range optionSpecs {
		values[spec.name] = spec.get(o)
	}
	return values
}
