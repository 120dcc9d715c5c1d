// Package render rasterizes an assembled figure into PNG, PDF, or SVG.
// Each planned row is drawn as its own plot into a horizontal band of the
// shared canvas, so every row stays aligned on the genomic x-axis.
package render

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/figure"
	"github.com/bioplotkit/hicfig/pkg/genome"
	"github.com/bioplotkit/hicfig/pkg/layout"
	"github.com/bioplotkit/hicfig/pkg/observability"
	"github.com/bioplotkit/hicfig/pkg/track"
)

// Output format identifiers, matched against the output file extension.
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatPDF: true,
	FormatSVG: true,
}

// Options controls the output geometry.
type Options struct {
	// Width is the figure width in inches.
	Width float64

	// DPI applies to raster output only.
	DPI int
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = 6.0
	}
	if o.DPI == 0 {
		o.DPI = 96
	}
}

// FormatFor maps an output path to its format identifier.
func FormatFor(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !ValidFormats[ext] {
		return "", errors.New(errors.ErrCodeUnsupportedFormat,
			"unsupported output format %q (supported: png, pdf, svg)", ext)
	}
	return ext, nil
}

// WriteFile renders the figure and writes it to path, choosing the
// format from the extension. Nothing is written when rendering fails.
func WriteFile(fig *figure.Figure, path string, opts Options) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating %s", path)
	}
	defer f.Close()
	return Write(fig, f, format, opts)
}

// Write renders the figure into w in the given format.
func Write(fig *figure.Figure, w io.Writer, format string, opts Options) error {
	ctx := context.Background()
	observability.Render().OnRenderStart(ctx, format)
	start := time.Now()
	err := write(fig, w, format, opts)
	observability.Render().OnRenderComplete(ctx, format, time.Since(start), err)
	return err
}

func write(fig *figure.Figure, w io.Writer, format string, opts Options) error {
	opts.setDefaults()

	width := vg.Length(opts.Width) * vg.Inch
	// Row heights are relative units; one unit maps to a fixed strip so
	// the aspect follows the plan.
	height := vg.Length(fig.Plan.TotalHeight) * vg.Inch / 2

	switch format {
	case FormatPNG:
		c := vgimg.NewWith(
			vgimg.UseWH(width, height),
			vgimg.UseDPI(opts.DPI),
		)
		if err := drawFigure(fig, draw.New(c)); err != nil {
			return err
		}
		png := vgimg.PngCanvas{Canvas: c}
		if _, err := png.WriteTo(w); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing png")
		}
	case FormatPDF:
		c := vgpdf.New(width, height)
		if err := drawFigure(fig, draw.New(c)); err != nil {
			return err
		}
		if _, err := c.WriteTo(w); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing pdf")
		}
	case FormatSVG:
		c := vgsvg.New(width, height)
		if err := drawFigure(fig, draw.New(c)); err != nil {
			return err
		}
		if _, err := c.WriteTo(w); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing svg")
		}
	default:
		return errors.New(errors.ErrCodeUnsupportedFormat,
			"unsupported output format %q (supported: png, pdf, svg)", format)
	}
	return nil
}

// drawFigure walks the plan top to bottom, cropping one band per row and
// delegating to the per-kind row painters. Per-kind payload cursors keep
// rows matched to their payloads in plan order.
func drawFigure(fig *figure.Figure, dc draw.Canvas) error {
	if fig.TwoColumn {
		return drawTwoColumn(fig, dc)
	}
	total := fig.Plan.TotalHeight
	canvasH := dc.Max.Y - dc.Min.Y

	consumed := 0.0
	var signalIdx, intervalIdx, loopIdx int
	for i, row := range fig.Plan.Rows {
		yTop := canvasH * vg.Length(1-consumed/total)
		consumed += row.Height
		yBottom := canvasH * vg.Length(1-consumed/total)
		band := draw.Crop(dc, rowPadding, -rowPadding, yBottom, yTop-canvasH)

		lastRow := i == len(fig.Plan.Rows)-1

		var p *plot.Plot
		var err error
		switch row.Kind {
		case layout.RowColorbar:
			p = colorbarPlot(fig.Heatmap)
		case layout.RowHeatmap:
			p = newRowPlot(fig.Region, lastRow)
			err = plotHeatmap(p, fig.Heatmap, fig.Region)
		case layout.RowLoop:
			p = newRowPlot(fig.Region, lastRow)
			plotLoops(p, fig.Loops[loopIdx])
			loopIdx++
		case layout.RowSignal:
			p = newRowPlot(fig.Region, lastRow)
			err = plotSignal(p, fig.Signals[signalIdx])
			signalIdx++
		case layout.RowInterval:
			p = newRowPlot(fig.Region, lastRow)
			plotIntervals(p, fig.Ivals[intervalIdx])
			intervalIdx++
		case layout.RowGene:
			p = newRowPlot(fig.Region, lastRow)
			err = plotGenes(p, fig.Genes)
		}
		if err != nil {
			return err
		}
		p.Draw(band)
	}
	return nil
}

const rowPadding = 0.3 * vg.Inch

// columnGutter separates the two columns of a horizontal-layout page.
const columnGutter = 0.15 * vg.Inch

// drawTwoColumn renders a horizontal-layout figure: every track row
// splits into a primary column on the left and a secondary column on the
// right, with the gene row repeated in both. Heatmap and colorbar rows
// keep the full width. A group with no payload for a slot leaves its
// half blank.
func drawTwoColumn(fig *figure.Figure, dc draw.Canvas) error {
	total := fig.Plan.TotalHeight
	canvasH := dc.Max.Y - dc.Min.Y

	sigA, sigB := splitSignals(fig.Signals)
	ivalA, ivalB := splitIntervals(fig.Ivals)
	loopA, loopB := splitLoops(fig.Loops)

	consumed := 0.0
	for i, row := range fig.Plan.Rows {
		yTop := canvasH * vg.Length(1-consumed/total)
		consumed += row.Height
		yBottom := canvasH * vg.Length(1-consumed/total)
		band := draw.Crop(dc, rowPadding, -rowPadding, yBottom, yTop-canvasH)
		lastRow := i == len(fig.Plan.Rows)-1

		switch row.Kind {
		case layout.RowHeatmap:
			p := newRowPlot(fig.Region, lastRow)
			if err := plotHeatmap(p, fig.Heatmap, fig.Region); err != nil {
				return err
			}
			p.Draw(band)
			continue
		case layout.RowColorbar:
			colorbarPlot(fig.Heatmap).Draw(band)
			continue
		}

		half := (band.Max.X - band.Min.X) / 2
		columns := []draw.Canvas{
			draw.Crop(band, 0, -(half + columnGutter), 0, 0),
			draw.Crop(band, half+columnGutter, 0, 0, 0),
		}
		for col, cv := range columns {
			p := newRowPlot(fig.Region, lastRow)
			var err error
			switch row.Kind {
			case layout.RowLoop:
				payloads := loopA
				if col == 1 {
					payloads = loopB
				}
				if len(payloads) > 0 {
					plotLoops(p, payloads[0])
				}
			case layout.RowSignal:
				payloads := sigA
				if col == 1 {
					payloads = sigB
				}
				if row.Slot < len(payloads) {
					err = plotSignal(p, payloads[row.Slot])
				}
			case layout.RowInterval:
				payloads := ivalA
				if col == 1 {
					payloads = ivalB
				}
				if row.Slot < len(payloads) {
					plotIntervals(p, payloads[row.Slot])
				}
			case layout.RowGene:
				err = plotGenes(p, fig.Genes)
			}
			if err != nil {
				return err
			}
			p.Draw(cv)
		}
	}
	return nil
}

func splitSignals(in []figure.SignalPayload) (a, b []figure.SignalPayload) {
	for _, p := range in {
		if p.Group == track.Secondary {
			b = append(b, p)
		} else {
			a = append(a, p)
		}
	}
	return a, b
}

func splitIntervals(in []figure.IntervalPayload) (a, b []figure.IntervalPayload) {
	for _, p := range in {
		if p.Group == track.Secondary {
			b = append(b, p)
		} else {
			a = append(a, p)
		}
	}
	return a, b
}

func splitLoops(in []figure.LoopPayload) (a, b []figure.LoopPayload) {
	for _, p := range in {
		if p.Group == track.Secondary {
			b = append(b, p)
		} else {
			a = append(a, p)
		}
	}
	return a, b
}

// newRowPlot builds a plot spanning the region on x. Only the bottom row
// shows the coordinate axis, in megabases.
func newRowPlot(region genome.Region, showAxis bool) *plot.Plot {
	p := plot.New()
	p.X.Min = float64(region.Start)
	p.X.Max = float64(region.End)
	p.HideY()
	if showAxis {
		p.X.Tick.Marker = megabaseTicker{}
	} else {
		p.HideX()
	}
	return p
}
