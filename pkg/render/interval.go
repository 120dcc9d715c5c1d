package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bioplotkit/hicfig/pkg/figure"
)

// intervalBoxes draws one filled box per interval record across the
// middle band of its row.
type intervalBoxes struct {
	payload figure.IntervalPayload
}

func (b intervalBoxes) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	yLo := trY(0.25)
	yHi := trY(0.75)
	for _, rec := range b.payload.Records {
		xLo := trX(float64(rec.Start))
		xHi := trX(float64(rec.End))
		if xHi <= xLo {
			xHi = xLo + 1
		}
		poly := []vg.Point{
			{X: xLo, Y: yLo},
			{X: xHi, Y: yLo},
			{X: xHi, Y: yHi},
			{X: xLo, Y: yHi},
		}
		c.SetColor(b.payload.Color)
		c.Fill(polyPath(poly))
	}
}

func polyPath(pts []vg.Point) vg.Path {
	var path vg.Path
	path.Move(pts[0])
	for _, pt := range pts[1:] {
		path.Line(pt)
	}
	path.Close()
	return path
}

func plotIntervals(p *plot.Plot, payload figure.IntervalPayload) {
	p.Y.Min = 0
	p.Y.Max = 1
	addRowLabel(p, payload.Label)
	p.Add(intervalBoxes{payload: payload})
}
