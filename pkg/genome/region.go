// Package genome defines the coordinate types shared by every track in a
// figure. A single Region is parsed once per invocation and every data
// source is queried with that identical window.
package genome

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bioplotkit/hicfig/pkg/errors"
)

// Region is a half-open genomic coordinate window [Start, End) on one
// chromosome. All tracks of a figure are rendered against the same Region.
type Region struct {
	Chrom string
	Start int
	End   int
}

// Validate checks the Region invariants: non-empty chromosome,
// non-negative start, and Start < End.
func (r Region) Validate() error {
	if r.Chrom == "" {
		return errors.New(errors.ErrCodeInvalidRegion, "chromosome must not be empty")
	}
	if r.Start < 0 {
		return errors.New(errors.ErrCodeInvalidRegion, "start must be non-negative, got %d", r.Start)
	}
	if r.Start >= r.End {
		return errors.New(errors.ErrCodeInvalidRegion, "start must be less than end, got %d-%d", r.Start, r.End)
	}
	return nil
}

// Len returns the width of the region in base pairs.
func (r Region) Len() int { return r.End - r.Start }

// Overlaps reports whether [start, end) overlaps the region.
func (r Region) Overlaps(start, end int) bool {
	return start < r.End && end > r.Start
}

// Contains reports whether [start, end) lies entirely within the region.
func (r Region) Contains(start, end int) bool {
	return start >= r.Start && end <= r.End
}

// Clip truncates [start, end) to the region boundary.
func (r Region) Clip(start, end int) (int, int) {
	if start < r.Start {
		start = r.Start
	}
	if end > r.End {
		end = r.End
	}
	return start, end
}

// String formats the region as "chrom:start-end".
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// ParseRegion parses a region string of the form "chr1:1000000-2000000".
// Commas in coordinates are permitted ("chr1:1,000,000-2,000,000").
func ParseRegion(s string) (Region, error) {
	chrom, span, ok := strings.Cut(s, ":")
	if !ok {
		return Region{}, errors.New(errors.ErrCodeInvalidRegion, "region %q must have the form chrom:start-end", s)
	}
	from, to, ok := strings.Cut(span, "-")
	if !ok {
		return Region{}, errors.New(errors.ErrCodeInvalidRegion, "region %q must have the form chrom:start-end", s)
	}
	start, err := parseCoord(from)
	if err != nil {
		return Region{}, errors.New(errors.ErrCodeInvalidRegion, "invalid start coordinate %q", from)
	}
	end, err := parseCoord(to)
	if err != nil {
		return Region{}, errors.New(errors.ErrCodeInvalidRegion, "invalid end coordinate %q", to)
	}
	r := Region{Chrom: chrom, Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// parseCoord parses a coordinate, tolerating thousands separators.
func parseCoord(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.Atoi(s)
}
