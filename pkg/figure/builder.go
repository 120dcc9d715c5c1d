package figure

import (
	"context"
	"image/color"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
	"github.com/bioplotkit/hicfig/pkg/layout"
	"github.com/bioplotkit/hicfig/pkg/matrix"
	"github.com/bioplotkit/hicfig/pkg/observability"
	"github.com/bioplotkit/hicfig/pkg/scale"
	"github.com/bioplotkit/hicfig/pkg/source"
	"github.com/bioplotkit/hicfig/pkg/track"
)

// Figure is the fully resolved drawable description handed to the
// renderer. Payload slices follow row order: primary group first, then
// secondary. The renderer makes no data decisions; empty payloads keep
// their rows and draw blank.
type Figure struct {
	Region  genome.Region
	Plan    layout.Plan
	Heatmap HeatmapPayload
	Signals []SignalPayload
	Loops   []LoopPayload
	Ivals   []IntervalPayload
	Genes   *GenePayload

	// TwoColumn marks a horizontal-layout figure: track rows render as
	// side-by-side primary/secondary columns, and the plan pairs slots
	// across groups.
	TwoColumn bool
}

// HeatmapPayload is the comparison matrix plus its symmetric color
// bounds. HasVLim false means auto-scale.
type HeatmapPayload struct {
	Matrix  *matrix.Contact
	VMin    float64
	VMax    float64
	HasVLim bool
}

// SignalPayload is one signal row: the series, its resolved y-bounds,
// and how to draw it. An empty Series renders as a blank panel.
type SignalPayload struct {
	Label  string
	Color  color.Color
	Group  track.Group
	Series track.ValueSeries
	Bounds scale.Bounds
}

// IntervalPayload is one interval row.
type IntervalPayload struct {
	Label   string
	Color   color.Color
	Group   track.Group
	Records []source.IntervalRecord
}

// LoopPayload is one arc row.
type LoopPayload struct {
	Label   string
	Color   color.Color
	Group   track.Group
	Records []source.LoopRecord
}

// GenePayload is the stacked gene row. LabelNames restricts which gene
// names get text labels; nil labels every gene.
type GenePayload struct {
	Color      color.Color
	Step       float64
	Features   []layout.StackedGene
	LabelNames map[string]bool
}

// Builder runs the fetch → transform → resolve → plan sequence. It is
// stateless except for the logger; one Builder can serve many builds.
type Builder struct {
	Logger *log.Logger
}

// NewBuilder creates a builder. A nil logger falls back to the default.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Logger: logger}
}

// Build assembles the complete figure for one region. A fatal error on
// any track aborts the build with no partial result; a track with no
// data in the region is logged and keeps its row as a blank panel.
func (b *Builder) Build(ctx context.Context, opts Options) (*Figure, error) {
	if opts.Logger == nil {
		opts.Logger = b.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	region := opts.region

	heatmap := &HeatmapPayload{}
	if !opts.TracksOnly {
		var err error
		if heatmap, err = b.buildHeatmap(ctx, opts, region); err != nil {
			return nil, err
		}
		logger.Info("computed comparison matrix",
			"region", region.String(),
			"bins", heatmap.Matrix.Bins(),
			"operation", string(opts.Operation))
	}

	signals, err := b.buildSignals(opts, region, logger)
	if err != nil {
		return nil, err
	}
	loops, err := b.buildLoops(opts, region, logger)
	if err != nil {
		return nil, err
	}
	ivals, err := b.buildIntervals(opts, region, logger)
	if err != nil {
		return nil, err
	}
	genes, err := b.buildGenes(opts, region, logger)
	if err != nil {
		return nil, err
	}

	plan := layout.PlanRows(layout.Counts{
		Heatmap:         !opts.TracksOnly,
		LoopPrimary:     len(opts.Tracks.ByKind(track.Loop, track.Primary)) > 0,
		LoopSecondary:   len(opts.Tracks.ByKind(track.Loop, track.Secondary)) > 0,
		SignalPrimary:   len(opts.Tracks.ByKind(track.Signal, track.Primary)),
		SignalSecondary: len(opts.Tracks.ByKind(track.Signal, track.Secondary)),
		IntervalPrimary: len(opts.Tracks.ByKind(track.Interval, track.Primary)),
		IntervalSecond:  len(opts.Tracks.ByKind(track.Interval, track.Secondary)),
		Gene:            genes != nil,
		Horizontal:      opts.Layout == LayoutHorizontal,
	}, opts.TrackSize)

	return &Figure{
		Region:    region,
		Plan:      plan,
		Heatmap:   *heatmap,
		Signals:   signals,
		Loops:     loops,
		Ivals:     ivals,
		Genes:     genes,
		TwoColumn: opts.Layout == LayoutHorizontal,
	}, nil
}

func (b *Builder) buildHeatmap(ctx context.Context, opts Options, region genome.Region) (*HeatmapPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, err := fetchMatrix(ctx, opts.MatrixA, region, opts.Resolution)
	if err != nil {
		return nil, err
	}
	var cb *matrix.Contact
	if opts.MatrixB != "" {
		if cb, err = fetchMatrix(ctx, opts.MatrixB, region, opts.Resolution); err != nil {
			return nil, err
		}
	}
	start := time.Now()
	res, err := matrix.Transform(a, cb, opts.Operation, opts.Method)
	observability.Build().OnTransformComplete(ctx, string(opts.Operation), a.Bins(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &HeatmapPayload{
		Matrix:  res.Contact,
		VMin:    res.VMin,
		VMax:    res.VMax,
		HasVLim: res.HasVLim,
	}, nil
}

func fetchMatrix(ctx context.Context, path string, region genome.Region, resolution int) (*matrix.Contact, error) {
	src, err := matrix.NewFileSource(path)
	if err != nil {
		return nil, err
	}
	observability.Build().OnFetchStart(ctx, "matrix", path)
	start := time.Now()
	c, err := src.Fetch(region, resolution)
	observability.Build().OnFetchComplete(ctx, "matrix", path, time.Since(start), err)
	return c, err
}

func (b *Builder) buildSignals(opts Options, region genome.Region, logger *log.Logger) ([]SignalPayload, error) {
	groupA := opts.Tracks.ByKind(track.Signal, track.Primary)
	groupB := opts.Tracks.ByKind(track.Signal, track.Secondary)

	fetch := func(tracks []track.Track) ([]track.ValueSeries, error) {
		out := make([]track.ValueSeries, len(tracks))
		for i, t := range tracks {
			series, err := source.FetchSignal(t.Path, region)
			if err != nil {
				if errors.IsFatal(err) {
					return nil, err
				}
				logger.Warn("no signal data in region", "track", t.Label, "region", region.String())
				continue
			}
			out[i] = *series
		}
		return out, nil
	}

	seriesA, err := fetch(groupA)
	if err != nil {
		return nil, err
	}
	seriesB, err := fetch(groupB)
	if err != nil {
		return nil, err
	}

	bounds, err := scale.Resolve(seriesA, seriesB, opts.ScaleMode())
	if err != nil {
		return nil, err
	}
	// Horizontal layout resolves one bound per pair, shared by both
	// members; vertical resolves one per track in A-then-B order.
	boundFor := func(i int) scale.Bounds {
		if opts.ScaleMode() == scale.ModePaired && i >= len(groupA) {
			return bounds[i-len(groupA)]
		}
		return bounds[i]
	}

	payloads := make([]SignalPayload, 0, len(groupA)+len(groupB))
	for i, t := range groupA {
		payloads = append(payloads, SignalPayload{
			Label: t.Label, Color: t.Color, Group: t.Group,
			Series: seriesA[i], Bounds: boundFor(i),
		})
	}
	for i, t := range groupB {
		payloads = append(payloads, SignalPayload{
			Label: t.Label, Color: t.Color, Group: t.Group,
			Series: seriesB[i], Bounds: boundFor(len(groupA) + i),
		})
	}
	return payloads, nil
}

func (b *Builder) buildLoops(opts Options, region genome.Region, logger *log.Logger) ([]LoopPayload, error) {
	var payloads []LoopPayload
	for _, g := range []track.Group{track.Primary, track.Secondary} {
		for _, t := range opts.Tracks.ByKind(track.Loop, g) {
			records, err := source.FetchLoops(t.Path, region)
			if err != nil {
				if errors.IsFatal(err) {
					return nil, err
				}
				logger.Warn("no loops in region", "track", t.Label, "region", region.String())
			}
			payloads = append(payloads, LoopPayload{
				Label: t.Label, Color: t.Color, Group: g, Records: records,
			})
		}
	}
	return payloads, nil
}

func (b *Builder) buildIntervals(opts Options, region genome.Region, logger *log.Logger) ([]IntervalPayload, error) {
	var payloads []IntervalPayload
	for _, g := range []track.Group{track.Primary, track.Secondary} {
		for _, t := range opts.Tracks.ByKind(track.Interval, g) {
			records, err := source.FetchIntervals(t.Path, region)
			if err != nil {
				if errors.IsFatal(err) {
					return nil, err
				}
				logger.Warn("no intervals in region", "track", t.Label, "region", region.String())
			}
			payloads = append(payloads, IntervalPayload{
				Label: t.Label, Color: t.Color, Group: g, Records: records,
			})
		}
	}
	return payloads, nil
}

func (b *Builder) buildGenes(opts Options, region genome.Region, logger *log.Logger) (*GenePayload, error) {
	tracks := opts.Tracks.ByKind(track.Gene, track.Primary)
	tracks = append(tracks, opts.Tracks.ByKind(track.Gene, track.Secondary)...)
	if len(tracks) == 0 {
		return nil, nil
	}
	t := tracks[0]
	features, err := source.FetchGenes(t.Path, region)
	if err != nil {
		if errors.IsFatal(err) {
			return nil, err
		}
		logger.Warn("no genes in region", "track", t.Label, "region", region.String())
	}

	payload := &GenePayload{
		Color:    t.Color,
		Step:     opts.GeneStep,
		Features: layout.StackGenes(features, opts.GeneStep),
	}
	if len(opts.Genes) > 0 {
		payload.LabelNames = make(map[string]bool, len(opts.Genes))
		for _, name := range opts.Genes {
			payload.LabelNames[name] = true
		}
	}
	return payload, nil
}
