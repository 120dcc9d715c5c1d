// Package source implements the region data source: a uniform accessor over
// differently-formatted genomic files, returning records over one coordinate
// window. Format parsing is delegated to gonetics where a reader exists
// (BigWig, BED, GTF); the simple text formats (bedGraph, BEDPE) are parsed
// here directly.
//
// Every fetch is scoped to a single genome.Region and closes its file handle
// on all paths. A region with no overlapping records yields a
// NO_DATA_IN_REGION error, which callers treat as "render this row blank"
// rather than a failure. An unrecognized file extension is fatal and names
// the extension.
package source

import (
	"path/filepath"
	"strings"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
	"github.com/bioplotkit/hicfig/pkg/track"
)

// Span is a half-open sub-feature range, used for exons.
type Span struct {
	Start int
	End   int
}

// IntervalRecord is a BED record clipped to the fetch region.
type IntervalRecord struct {
	Start int
	End   int
}

// LoopRecord is a pair of anchor intervals representing a long-range
// contact. Both anchors lie entirely within the fetch region; partially
// overlapping loops are excluded at fetch time, never clipped.
type LoopRecord struct {
	Start1 int
	End1   int
	Start2 int
	End2   int
}

// GeneFeature is one gene's longest isoform together with its exons.
type GeneFeature struct {
	ID    string
	Name  string
	Start int
	End   int
	Exons []Span
}

// normExt returns the lowercased extension of path, looking through a
// trailing .gz ("genes.gtf.gz" -> ".gtf").
func normExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	return ext
}

// unsupported builds the fatal error for an unrecognized extension.
func unsupported(path string, supported string) error {
	return errors.New(errors.ErrCodeUnsupportedFormat,
		"unsupported file format %q (supported: %s)", normExt(path), supported)
}

// FetchSignal reads a continuous signal series for the region.
//
// BigWig files (.bw, .bigwig) yield a dense series at the file's native bin
// size. BedGraph files (.bedgraph, .bg) yield a breakpoint-compressed series:
// the sorted unique interval boundaries clipped to the region, each carrying
// the value of the interval covering it, with uncovered positions prefilled
// to zero. Overlapping source intervals resolve last-writer-wins in file
// order.
func FetchSignal(path string, region genome.Region) (*track.ValueSeries, error) {
	switch normExt(path) {
	case ".bw", ".bigwig":
		return fetchBigWig(path, region)
	case ".bedgraph", ".bg":
		return fetchBedGraph(path, region)
	default:
		return nil, unsupported(path, ".bw, .bigwig, .bedgraph, .bg")
	}
}

// FetchIntervals reads BED records overlapping the region, each clipped to
// the region boundary.
func FetchIntervals(path string, region genome.Region) ([]IntervalRecord, error) {
	switch normExt(path) {
	case ".bed":
		return fetchBed(path, region)
	default:
		return nil, unsupported(path, ".bed")
	}
}

// FetchLoops reads BEDPE records whose anchor pairs both lie entirely
// within the region on the region's chromosome.
func FetchLoops(path string, region genome.Region) ([]LoopRecord, error) {
	switch normExt(path) {
	case ".bedpe":
		return fetchBedpe(path, region)
	default:
		return nil, unsupported(path, ".bedpe")
	}
}

// FetchGenes reads gene models overlapping the region (any overlap, not
// containment), reduced to the longest isoform per gene_id, with exon
// sub-features attached.
func FetchGenes(path string, region genome.Region) ([]GeneFeature, error) {
	switch normExt(path) {
	case ".gtf", ".gff":
		return fetchGTF(path, region)
	default:
		return nil, unsupported(path, ".gtf, .gff (optionally gzipped)")
	}
}

// noData builds the non-fatal empty-region error shared by all fetch kinds.
func noData(path string, region genome.Region) error {
	return errors.New(errors.ErrCodeNoDataInRegion,
		"no records in %s overlap %s", path, region)
}
