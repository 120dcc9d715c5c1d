package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bioplotkit/hicfig/pkg/figure"
)

// Gene glyph geometry, in offset units relative to the lane floor.
const (
	geneBodyLift  = 0.15 // centerline of the intron-spanning body line
	geneExonTop   = 0.3  // exon box top edge
	geneLabelLift = 0.4  // baseline of the gene name label
)

// geneGlyphs draws each stacked gene as a thin body line with filled
// exon boxes on top, one lane per assigned offset.
type geneGlyphs struct {
	payload *figure.GenePayload
}

func (g geneGlyphs) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	bodySty := draw.LineStyle{Color: g.payload.Color, Width: vg.Points(1)}

	for _, f := range g.payload.Features {
		// Gene fetch returns boundary-straddling features unclipped, so
		// every span is clamped to the axis range before stroking; the
		// row band must never paint beyond its crop.
		start, end, ok := clampSpan(float64(f.Gene.Start), float64(f.Gene.End), plt.X.Min, plt.X.Max)
		if !ok {
			continue
		}
		yBody := trY(f.Offset + geneBodyLift)
		c.StrokeLines(bodySty, []vg.Point{
			{X: trX(start), Y: yBody},
			{X: trX(end), Y: yBody},
		})
		for _, exon := range f.Gene.Exons {
			eLo, eHi, ok := clampSpan(float64(exon.Start), float64(exon.End), plt.X.Min, plt.X.Max)
			if !ok {
				continue
			}
			xLo := trX(eLo)
			xHi := trX(eHi)
			if xHi <= xLo {
				xHi = xLo + 1
			}
			c.SetColor(g.payload.Color)
			c.Fill(polyPath([]vg.Point{
				{X: xLo, Y: trY(f.Offset)},
				{X: xHi, Y: trY(f.Offset)},
				{X: xHi, Y: trY(f.Offset + geneExonTop)},
				{X: xLo, Y: trY(f.Offset + geneExonTop)},
			}))
		}
	}
}

// clampSpan truncates [start, end] to [min, max]. ok is false when the
// span lies entirely outside the range.
func clampSpan(start, end, min, max float64) (float64, float64, bool) {
	if end < min || start > max {
		return 0, 0, false
	}
	if start < min {
		start = min
	}
	if end > max {
		end = max
	}
	return start, end, true
}

func plotGenes(p *plot.Plot, payload *figure.GenePayload) error {
	maxOffset := 0.0
	for _, f := range payload.Features {
		if f.Offset > maxOffset {
			maxOffset = f.Offset
		}
	}
	p.Y.Min = 0
	p.Y.Max = maxOffset + payload.Step + geneLabelLift
	p.Add(geneGlyphs{payload: payload})

	// Gene name labels sit just above each glyph. An explicit filter
	// restricts labelling; nil labels every gene.
	var xys plotter.XYs
	var names []string
	for _, f := range payload.Features {
		if payload.LabelNames != nil && !payload.LabelNames[f.Gene.Name] {
			continue
		}
		x, _, ok := clampSpan(float64(f.Gene.Start), float64(f.Gene.End), p.X.Min, p.X.Max)
		if !ok {
			continue
		}
		xys = append(xys, plotter.XY{
			X: x,
			Y: f.Offset + geneLabelLift,
		})
		names = append(names, f.Gene.Name)
	}
	if len(names) == 0 {
		return nil
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = rowLabelFontSize
	}
	p.Add(labels)
	return nil
}
