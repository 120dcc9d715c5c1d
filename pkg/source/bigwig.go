package source

import (
	"math"
	"os"

	"github.com/pbenner/gonetics"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
	"github.com/bioplotkit/hicfig/pkg/track"
)

// fetchBigWig queries a BigWig file for the region at the file's native bin
// size. Positions are the left edge of each bin. Bins with no coverage come
// back NaN from the reader; a region where every bin is NaN is reported as
// no data rather than as a series of missing values.
func fetchBigWig(path string, region genome.Region) (*track.ValueSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "opening %s", path)
	}
	defer f.Close()

	reader, err := gonetics.NewBigWigReader(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading BigWig header of %s", path)
	}

	// binSize 0 lets the reader pick the file's native resolution.
	values, binSize, err := reader.QuerySlice(
		region.Chrom, region.Start, region.End, gonetics.BinMean, 0, 0, math.NaN())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "querying %s for %s", path, region)
	}

	series := &track.ValueSeries{
		Pos: make([]float64, len(values)),
		Val: values,
	}
	finite := false
	for i, v := range values {
		series.Pos[i] = float64(region.Start + i*binSize)
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = true
		}
	}
	if !finite {
		return nil, noData(path, region)
	}
	return series, nil
}
