package source

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
)

// fetchBedpe reads a BEDPE loop file and returns the records where both
// anchors lie entirely within the region on the region's chromosome.
// A loop with one anchor straddling the boundary is excluded outright; this
// differs from interval fetches, which clip. An arc with a truncated anchor
// would misplace its foot, so partial loops are dropped instead.
func fetchBedpe(path string, region genome.Region) ([]LoopRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "opening %s", path)
	}
	defer f.Close()

	var out []LoopRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, errors.New(errors.ErrCodeInternal,
				"BEDPE line in %s has %d columns, want at least 6", path, len(fields))
		}
		chrom1, chrom2 := fields[0], fields[3]
		if chrom1 != region.Chrom || chrom2 != region.Chrom {
			continue
		}
		coords := make([]int, 4)
		for i, idx := range []int{1, 2, 4, 5} {
			v, err := strconv.Atoi(fields[idx])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing coordinate in %s", path)
			}
			coords[i] = v
		}
		rec := LoopRecord{Start1: coords[0], End1: coords[1], Start2: coords[2], End2: coords[3]}
		if !region.Contains(rec.Start1, rec.End1) || !region.Contains(rec.Start2, rec.End2) {
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading %s", path)
	}
	if len(out) == 0 {
		return nil, noData(path, region)
	}
	return out, nil
}
