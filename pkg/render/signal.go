package render

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/bioplotkit/hicfig/pkg/figure"
)

// yHeadroom keeps the signal peak off the panel ceiling.
const yHeadroom = 1.1

func plotSignal(p *plot.Plot, payload figure.SignalPayload) error {
	if payload.Bounds.Set {
		p.Y.Min = math.Min(0, payload.Bounds.Min)
		p.Y.Max = payload.Bounds.Max * yHeadroom
		if p.Y.Max <= p.Y.Min {
			p.Y.Max = p.Y.Min + 1
		}
	}
	addRowLabel(p, payload.Label)

	if payload.Series.Empty() {
		return nil
	}
	xys := make(plotter.XYs, 0, len(payload.Series.Pos))
	for i, pos := range payload.Series.Pos {
		v := payload.Series.Val[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: pos, Y: v})
	}
	if len(xys) == 0 {
		return nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = payload.Color
	line.FillColor = payload.Color
	p.Add(line)
	return nil
}
