package source

import (
	"github.com/pbenner/gonetics"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
)

// fetchBed reads a BED file and returns the records overlapping the region,
// clipped to the region boundary. Columns beyond the first three are
// ignored.
func fetchBed(path string, region genome.Region) ([]IntervalRecord, error) {
	granges := gonetics.GRanges{}
	if err := granges.ImportBed3(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", path)
	}

	var out []IntervalRecord
	for i := 0; i < granges.Length(); i++ {
		if granges.Seqnames[i] != region.Chrom {
			continue
		}
		from, to := granges.Ranges[i].From, granges.Ranges[i].To
		if !region.Overlaps(from, to) {
			continue
		}
		start, end := region.Clip(from, to)
		out = append(out, IntervalRecord{Start: start, End: end})
	}
	if len(out) == 0 {
		return nil, noData(path, region)
	}
	return out, nil
}
