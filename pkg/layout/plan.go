package layout

import "github.com/bioplotkit/hicfig/pkg/track"

// RowKind identifies what a planned row renders.
type RowKind string

const (
	RowHeatmap  RowKind = "heatmap"
	RowColorbar RowKind = "colorbar"
	RowLoop     RowKind = "loop"
	RowSignal   RowKind = "signal"
	RowInterval RowKind = "interval"
	RowGene     RowKind = "gene"
)

// Colorbar strip height, independent of the configured track size.
const colorbarHeight = 0.1

// Loop arc rows get one fixed unit of height.
const loopHeight = 1.0

// Row is one horizontal band of the figure. Slot indexes into the
// per-kind payload list assembled alongside the plan; Group tells signal
// and interval rows which sample they belong to.
type Row struct {
	Kind   RowKind
	Group  track.Group
	Slot   int
	Height float64
}

// Plan is the full ordered row sequence plus the summed relative height,
// which the renderer scales to the output canvas.
type Plan struct {
	Rows        []Row
	TotalHeight float64
}

// Counts is the track inventory the planner works from. Row count is
// structural: it is decided from these counts before any data is
// fetched, so a track whose fetch later comes back empty still owns its
// row.
type Counts struct {
	Heatmap         bool
	LoopPrimary     bool
	LoopSecondary   bool
	SignalPrimary   int
	SignalSecondary int
	IntervalPrimary int
	IntervalSecond  int
	Gene            bool

	// Horizontal plans a two-column page: each loop, signal, and
	// interval row holds the primary group on the left and the
	// secondary on the right, so slot i pairs across groups. The gene
	// row repeats in both columns. Heatmap and colorbar stay full
	// width. Row Group is meaningless on a horizontal plan.
	Horizontal bool
}

// PlanRows lays out the fixed row order: heatmap, colorbar, loops
// (primary then secondary), signals (primary group then secondary),
// intervals (primary then secondary), gene row last. trackSize sets the
// heatmap height; every 1D row gets a fifth of it. A tracks-only figure
// omits the heatmap and colorbar rows. A horizontal plan folds each
// primary/secondary pair into one two-column row instead.
func PlanRows(c Counts, trackSize float64) Plan {
	rowHeight := trackSize / 5

	var rows []Row
	if c.Heatmap {
		rows = append(rows,
			Row{Kind: RowHeatmap, Height: trackSize},
			Row{Kind: RowColorbar, Height: colorbarHeight})
	}
	if c.Horizontal {
		if c.LoopPrimary || c.LoopSecondary {
			rows = append(rows, Row{Kind: RowLoop, Height: loopHeight})
		}
		for i := 0; i < max(c.SignalPrimary, c.SignalSecondary); i++ {
			rows = append(rows, Row{Kind: RowSignal, Slot: i, Height: rowHeight})
		}
		for i := 0; i < max(c.IntervalPrimary, c.IntervalSecond); i++ {
			rows = append(rows, Row{Kind: RowInterval, Slot: i, Height: rowHeight})
		}
	} else {
		if c.LoopPrimary {
			rows = append(rows, Row{Kind: RowLoop, Group: track.Primary, Height: loopHeight})
		}
		if c.LoopSecondary {
			rows = append(rows, Row{Kind: RowLoop, Group: track.Secondary, Height: loopHeight})
		}
		slot := 0
		for i := 0; i < c.SignalPrimary; i++ {
			rows = append(rows, Row{Kind: RowSignal, Group: track.Primary, Slot: slot, Height: rowHeight})
			slot++
		}
		for i := 0; i < c.SignalSecondary; i++ {
			rows = append(rows, Row{Kind: RowSignal, Group: track.Secondary, Slot: slot, Height: rowHeight})
			slot++
		}
		slot = 0
		for i := 0; i < c.IntervalPrimary; i++ {
			rows = append(rows, Row{Kind: RowInterval, Group: track.Primary, Slot: slot, Height: rowHeight})
			slot++
		}
		for i := 0; i < c.IntervalSecond; i++ {
			rows = append(rows, Row{Kind: RowInterval, Group: track.Secondary, Slot: slot, Height: rowHeight})
			slot++
		}
	}
	if c.Gene {
		rows = append(rows, Row{Kind: RowGene, Height: rowHeight})
	}

	total := 0.0
	for _, r := range rows {
		total += r.Height
	}
	return Plan{Rows: rows, TotalHeight: total}
}
