// Package track defines the figure's track model: a tagged variant over the
// four track kinds, grouped into two sample groups with stable insertion
// order. The planner and renderer branch on Kind rather than sniffing the
// shape of fetched data.
package track

import "image/color"

// Kind identifies what a track draws.
type Kind int

const (
	// Signal is a continuous coverage/intensity series (BigWig, bedGraph).
	Signal Kind = iota
	// Interval is a set of discrete genomic ranges (BED).
	Interval
	// Loop is a set of paired anchors drawn as arcs (BEDPE).
	Loop
	// Gene is a gene-model annotation track (GTF).
	Gene
)

// String returns the kind name used in logs and config files.
func (k Kind) String() string {
	switch k {
	case Signal:
		return "signal"
	case Interval:
		return "interval"
	case Loop:
		return "loop"
	case Gene:
		return "gene"
	}
	return "unknown"
}

// Group identifies which sample group a track belongs to. Tracks render
// grouped by kind, primary group before secondary, in insertion order.
type Group int

const (
	// Primary is the case sample group.
	Primary Group = iota
	// Secondary is the control sample group.
	Secondary
)

// Track describes one auxiliary row of the figure: where its data comes
// from, how it is labelled and colored, and which sample group it belongs to.
type Track struct {
	Kind  Kind
	Path  string
	Label string
	Color color.Color
	Group Group
}

// Set is the ordered collection of a figure's auxiliary tracks.
// Append order within a group and kind is preserved through planning
// and rendering; the set never reorders tracks.
type Set struct {
	tracks []Track
}

// Add appends a track, preserving insertion order.
func (s *Set) Add(t Track) {
	s.tracks = append(s.tracks, t)
}

// ByKind returns the tracks of the given kind and group in insertion order.
func (s *Set) ByKind(k Kind, g Group) []Track {
	var out []Track
	for _, t := range s.tracks {
		if t.Kind == k && t.Group == g {
			out = append(out, t)
		}
	}
	return out
}

// Count returns the number of tracks of the given kind across both groups.
func (s *Set) Count(k Kind) int {
	n := 0
	for _, t := range s.tracks {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// All returns every track in insertion order.
func (s *Set) All() []Track {
	return s.tracks
}

// ValueSeries is an ordered sequence of (position, value) pairs produced by
// a signal fetch. A nil series is the explicit "no data in region" state,
// distinct from a series of zeros.
type ValueSeries struct {
	Pos []float64
	Val []float64
}

// Empty reports whether the series carries no data points.
func (v *ValueSeries) Empty() bool {
	return v == nil || len(v.Val) == 0
}
