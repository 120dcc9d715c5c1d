// Package figure assembles a complete renderable figure description from
// file-backed genomic data sources: the comparison heatmap, its color
// bounds, every 1D track payload, and the row layout they slot into.
package figure

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
	"github.com/bioplotkit/hicfig/pkg/matrix"
	"github.com/bioplotkit/hicfig/pkg/scale"
	"github.com/bioplotkit/hicfig/pkg/track"
)

const (
	// DefaultResolution is the contact matrix bin size in base pairs.
	DefaultResolution = 10000

	// DefaultTrackSize is the relative heatmap height; 1D rows get a
	// fifth of it.
	DefaultTrackSize = 5.0

	// DefaultGeneStep is the vertical lane spacing for stacked genes.
	DefaultGeneStep = 0.5
)

// Layout constants for the 1D track arrangement below the heatmap.
const (
	// LayoutVertical stacks every track in its own row with independent
	// bounds.
	LayoutVertical = "vertical"

	// LayoutHorizontal pairs sample and control tracks so each pair
	// shares one y-scale.
	LayoutHorizontal = "horizontal"
)

// ValidLayouts is the set of supported track layouts.
var ValidLayouts = map[string]bool{
	LayoutVertical:   true,
	LayoutHorizontal: true,
}

// Options configures one figure build. It supports JSON serialization
// for API requests.
type Options struct {
	// Region selects the genomic window, e.g. "chr2:10000000-12000000".
	Region string `json:"region"`

	// Resolution is the matrix bin size in base pairs.
	Resolution int `json:"resolution,omitempty"`

	// MatrixA is the primary contact matrix path; MatrixB the optional
	// control. With no control the heatmap shows MatrixA unchanged.
	MatrixA string `json:"matrix_a"`
	MatrixB string `json:"matrix_b,omitempty"`

	// TracksOnly drops the heatmap and colorbar rows, rendering just the
	// stacked 1D tracks. No matrix is required in this mode.
	TracksOnly bool `json:"tracks_only,omitempty"`

	// Operation and Method select the matrix comparison.
	Operation matrix.Op     `json:"operation,omitempty"`
	Method    matrix.Method `json:"method,omitempty"`

	// Layout arranges the 1D tracks: vertical or horizontal.
	Layout string `json:"layout,omitempty"`

	// TrackSize scales the heatmap row relative to the 1D rows.
	TrackSize float64 `json:"track_size,omitempty"`

	// GeneStep is the lane spacing for overlapping genes.
	GeneStep float64 `json:"gene_step,omitempty"`

	// Genes restricts which gene names get labels. Empty labels all.
	Genes []string `json:"genes,omitempty"`

	// Tracks is the 1D track inventory.
	Tracks *track.Set `json:"-"`

	// Logger receives per-track progress and no-data warnings.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	region genome.Region
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Region == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "region is required")
	}
	region, err := genome.ParseRegion(o.Region)
	if err != nil {
		return err
	}
	o.region = region
	if o.MatrixA == "" && !o.TracksOnly {
		return errors.New(errors.ErrCodeInvalidConfig, "a primary matrix is required")
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.Resolution < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "resolution must be positive, got %d", o.Resolution)
	}
	if o.Operation == "" {
		o.Operation = matrix.OpSubtract
	}
	if o.Method == "" {
		o.Method = matrix.MethodRaw
	}
	if o.Layout == "" {
		o.Layout = LayoutVertical
	}
	if !ValidLayouts[o.Layout] {
		return errors.New(errors.ErrCodeInvalidParameter,
			"invalid layout %q (must be one of: vertical, horizontal)", o.Layout)
	}
	if o.TrackSize == 0 {
		o.TrackSize = DefaultTrackSize
	}
	if o.GeneStep == 0 {
		o.GeneStep = DefaultGeneStep
	}
	if o.Tracks == nil {
		o.Tracks = &track.Set{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ScaleMode maps the track layout to its bounds alignment: horizontal
// pairs sample with control, vertical scales each track on its own.
func (o *Options) ScaleMode() scale.Mode {
	if o.Layout == LayoutHorizontal {
		return scale.ModePaired
	}
	return scale.ModeSequential
}
