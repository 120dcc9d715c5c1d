// Package scale computes shared y-axis bounds for signal track slots, so
// that a sample/control pair of tracks renders on one comparable scale.
package scale

import (
	"math"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/track"
)

// Mode selects how the two sample groups are aligned into slots.
type Mode string

const (
	// ModePaired pairs group A's i-th track with group B's i-th track in
	// one slot, so both render with an identical y-range. Group lengths
	// must match.
	ModePaired Mode = "paired"

	// ModeSequential gives every track its own slot, group A first. Any
	// group lengths are accepted.
	ModeSequential Mode = "sequential"
)

// Bounds is one slot's y-range. Set is false when no contributor had a
// finite value, in which case the renderer auto-scales.
type Bounds struct {
	Min, Max float64
	Set      bool
}

// Resolve computes per-slot bounds across the two groups. Only finite
// values contribute; an empty or all-NaN slot yields an unset Bounds.
func Resolve(groupA, groupB []track.ValueSeries, mode Mode) ([]Bounds, error) {
	switch mode {
	case ModePaired:
		if len(groupA) != len(groupB) {
			return nil, errors.New(errors.ErrCodeInvalidParameter,
				"paired scaling requires equal group sizes, got %d and %d",
				len(groupA), len(groupB))
		}
		out := make([]Bounds, len(groupA))
		for i := range groupA {
			out[i] = boundsOf(groupA[i].Val, groupB[i].Val)
		}
		return out, nil
	case ModeSequential:
		out := make([]Bounds, 0, len(groupA)+len(groupB))
		for i := range groupA {
			out = append(out, boundsOf(groupA[i].Val))
		}
		for i := range groupB {
			out = append(out, boundsOf(groupB[i].Val))
		}
		return out, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"unknown scaling mode %q (allowed: paired, sequential)", mode)
	}
}

func boundsOf(series ...[]float64) Bounds {
	b := Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, vals := range series {
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			b.Set = true
			if v < b.Min {
				b.Min = v
			}
			if v > b.Max {
				b.Max = v
			}
		}
	}
	if !b.Set {
		return Bounds{}
	}
	return b
}
