package source

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
	"github.com/bioplotkit/hicfig/pkg/track"
)

// bgRecord is one bedGraph line overlapping the fetch region, kept in file
// order so overlapping intervals resolve last-writer-wins.
type bgRecord struct {
	start int
	end   int
	value float64
}

// fetchBedGraph reads a bedGraph file and returns the breakpoint-compressed
// series for the region: one sample per unique interval boundary (clipped to
// the region), prefilled with a zero baseline for uncovered positions.
func fetchBedGraph(path string, region genome.Region) (*track.ValueSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "opening %s", path)
	}
	defer f.Close()

	var records []bgRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "track") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errors.New(errors.ErrCodeInternal,
				"bedGraph line in %s has %d columns, want 4", path, len(fields))
		}
		if fields[0] != region.Chrom {
			continue
		}
		start, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing start in %s", path)
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing end in %s", path)
		}
		if !region.Overlaps(start, end) {
			continue
		}
		value, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing value in %s", path)
		}
		records = append(records, bgRecord{start: start, end: end, value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading %s", path)
	}
	if len(records) == 0 {
		return nil, noData(path, region)
	}
	return compressBreakpoints(records, region), nil
}

// compressBreakpoints assembles the value series sampled at the unique
// interval boundaries. Positions outside any interval keep the zero
// baseline; positions covered by several intervals take the value of the
// last covering record in file order.
func compressBreakpoints(records []bgRecord, region genome.Region) *track.ValueSeries {
	seen := make(map[int]struct{}, 2*len(records))
	var positions []int
	for _, r := range records {
		for _, p := range []int{clampInt(r.start, region.Start, region.End), clampInt(r.end, region.Start, region.End)} {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				positions = append(positions, p)
			}
		}
	}
	sort.Ints(positions)

	values := make([]float64, len(positions))
	for _, r := range records {
		for i, p := range positions {
			if p >= r.start && p <= r.end {
				values[i] = r.value
			}
		}
	}

	series := &track.ValueSeries{
		Pos: make([]float64, len(positions)),
		Val: values,
	}
	for i, p := range positions {
		series.Pos[i] = float64(p)
	}
	return series
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
