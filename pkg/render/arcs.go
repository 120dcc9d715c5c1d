package render

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bioplotkit/hicfig/pkg/figure"
)

// arcSegments is the polyline resolution for one loop arc.
const arcSegments = 64

// loopArcs draws each loop as a semicircular arc between its anchor
// midpoints. Arcs are sampled as polylines so every vector backend
// renders them identically.
type loopArcs struct {
	payload figure.LoopPayload
}

func (a loopArcs) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := draw.LineStyle{Color: a.payload.Color, Width: vg.Points(1)}

	for _, rec := range a.payload.Records {
		x1 := float64(rec.Start1+rec.End1) / 2
		x2 := float64(rec.Start2+rec.End2) / 2
		center := (x1 + x2) / 2
		radius := math.Abs(x2-x1) / 2

		pts := make([]vg.Point, 0, arcSegments+1)
		for s := 0; s <= arcSegments; s++ {
			theta := math.Pi * float64(s) / arcSegments
			x := center + radius*math.Cos(theta)
			y := math.Sin(theta)
			pts = append(pts, vg.Point{X: trX(x), Y: trY(y)})
		}
		c.StrokeLines(sty, pts)
	}
}

func plotLoops(p *plot.Plot, payload figure.LoopPayload) {
	p.Y.Min = 0
	p.Y.Max = 1.05
	addRowLabel(p, payload.Label)
	p.Add(loopArcs{payload: payload})
}
