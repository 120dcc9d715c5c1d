package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/bioplotkit/hicfig/pkg/figure"
	"github.com/bioplotkit/hicfig/pkg/genome"
)

// paletteColors is the number of discrete colors sampled from the
// diverging colormap for heatmap cells.
const paletteColors = 255

// contactGrid adapts a contact matrix to plotter.GridXYZ. Rows are
// flipped so bin zero renders at the top of the panel, matching genome
// browser convention.
type contactGrid struct {
	payload figure.HeatmapPayload
}

func (g contactGrid) Dims() (int, int) {
	return g.payload.Matrix.Bins(), g.payload.Matrix.Bins()
}

func (g contactGrid) X(c int) float64 {
	r := g.payload.Matrix
	return float64(r.Region.Start) + (float64(c)+0.5)*float64(r.Resolution)
}

func (g contactGrid) Y(r int) float64 {
	m := g.payload.Matrix
	return float64(m.Region.Start) + (float64(r)+0.5)*float64(m.Resolution)
}

func (g contactGrid) Z(r, c int) float64 {
	n := g.payload.Matrix.Bins()
	return g.payload.Matrix.Data.At(n-1-r, c)
}

// colormap builds the diverging blue-white-red map centered at zero.
// With no finite cells the bounds fall back to a unit range.
func colormap(payload figure.HeatmapPayload) palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	if payload.HasVLim {
		cm.SetMin(payload.VMin)
		cm.SetMax(payload.VMax)
	} else {
		cm.SetMin(-1)
		cm.SetMax(1)
	}
	return cm
}

func plotHeatmap(p *plot.Plot, payload figure.HeatmapPayload, region genome.Region) error {
	cm := colormap(payload)
	hm := plotter.NewHeatMap(contactGrid{payload: payload}, cm.Palette(paletteColors))
	if payload.HasVLim {
		hm.Min = payload.VMin
		hm.Max = payload.VMax
	}
	hm.NaN = color.Transparent // unfilled cells for masked ratios
	p.Y.Min = float64(region.Start)
	p.Y.Max = float64(region.End)
	p.Add(hm)
	return nil
}

// colorbarPlot builds the gradient strip row. Unlike data rows its x-axis
// spans the color scale, not the genomic region.
func colorbarPlot(payload figure.HeatmapPayload) *plot.Plot {
	bar := &plotter.ColorBar{ColorMap: colormap(payload)}
	p := plot.New()
	p.HideY()
	p.Add(bar)
	p.X.Min = bar.ColorMap.Min()
	p.X.Max = bar.ColorMap.Max()
	return p
}
