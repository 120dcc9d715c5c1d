package matrix

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
)

// FileSource reads contact matrices from a ginteractions text dump
// (tab-separated chrom1 start1 end1 chrom2 start2 end2 value, the format
// produced by dumping a balanced cooler). The whole file is scanned per
// fetch; there is no index and no cross-invocation cache.
type FileSource struct {
	Path string
}

// NewFileSource validates the file extension and returns a source for it.
// Anything but a ginteractions dump is rejected up front so a misconfigured
// matrix path fails before any track is fetched.
func NewFileSource(path string) (*FileSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ginteractions", ".tsv", ".txt":
		return &FileSource{Path: path}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat,
			"unsupported matrix format %q (supported: .ginteractions, .tsv, .txt)",
			strings.ToLower(filepath.Ext(path)))
	}
}

// Fetch implements Source. Pairs outside the region are skipped; pairs
// inside are mirrored across the diagonal so the result is symmetric.
// Bins with no recorded pair stay zero.
func (s *FileSource) Fetch(region genome.Region, resolution int) (*Contact, error) {
	if resolution <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"resolution must be positive, got %d", resolution)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "opening %s", s.Path)
	}
	defer f.Close()

	n := binCount(region, resolution)
	data := mat.NewDense(n, n, nil)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 7 {
			return nil, errors.New(errors.ErrCodeInternal,
				"ginteractions line in %s has %d columns, want 7", s.Path, len(fields))
		}
		if fields[0] != region.Chrom || fields[3] != region.Chrom {
			continue
		}
		start1, err1 := strconv.Atoi(fields[1])
		start2, err2 := strconv.Atoi(fields[4])
		value, err3 := strconv.ParseFloat(fields[6], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, errors.New(errors.ErrCodeInternal,
				"malformed ginteractions record in %s: %q", s.Path, line)
		}
		// Integer division truncates toward zero, which would fold a
		// record starting just before the region into bin 0. Reject
		// below-region starts before binning.
		if start1 < region.Start || start2 < region.Start {
			continue
		}
		i := (start1 - region.Start) / resolution
		j := (start2 - region.Start) / resolution
		if i >= n || j >= n {
			continue
		}
		data.Set(i, j, value)
		data.Set(j, i, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading %s", s.Path)
	}

	return &Contact{Region: region, Resolution: resolution, Data: data}, nil
}
