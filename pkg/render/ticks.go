package render

import (
	"fmt"

	"gonum.org/v1/plot"
)

// megabaseTicker labels genomic coordinates in megabases on the bottom
// row's shared x-axis.
type megabaseTicker struct{}

func (megabaseTicker) Ticks(min, max float64) []plot.Tick {
	raw := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range raw {
		if t.Label == "" {
			continue
		}
		raw[i].Label = fmt.Sprintf("%.2f Mb", t.Value/1e6)
	}
	return raw
}
