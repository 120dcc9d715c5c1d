package layout

import (
	"testing"

	"github.com/bioplotkit/hicfig/pkg/track"
)

func TestPlanRowsFullFigure(t *testing.T) {
	plan := PlanRows(Counts{
		Heatmap:         true,
		LoopPrimary:     true,
		LoopSecondary:   true,
		SignalPrimary:   2,
		SignalSecondary: 1,
		IntervalPrimary: 1,
		IntervalSecond:  1,
		Gene:            true,
	}, 5.0)

	wantKinds := []RowKind{
		RowHeatmap, RowColorbar,
		RowLoop, RowLoop,
		RowSignal, RowSignal, RowSignal,
		RowInterval, RowInterval,
		RowGene,
	}
	if len(plan.Rows) != len(wantKinds) {
		t.Fatalf("PlanRows() produced %d rows, want %d", len(plan.Rows), len(wantKinds))
	}
	for i, r := range plan.Rows {
		if r.Kind != wantKinds[i] {
			t.Errorf("row %d kind = %v, want %v", i, r.Kind, wantKinds[i])
		}
	}

	// Groups keep primary-before-secondary order within each kind.
	if plan.Rows[2].Group != track.Primary || plan.Rows[3].Group != track.Secondary {
		t.Errorf("loop rows out of group order: %v, %v", plan.Rows[2].Group, plan.Rows[3].Group)
	}
	if plan.Rows[6].Group != track.Secondary {
		t.Errorf("third signal row group = %v, want secondary", plan.Rows[6].Group)
	}

	// Heights: heatmap = trackSize, colorbar thin strip, loops one unit,
	// every 1D row a fifth of the heatmap.
	if plan.Rows[0].Height != 5.0 {
		t.Errorf("heatmap height = %v, want 5", plan.Rows[0].Height)
	}
	if plan.Rows[1].Height != 0.1 {
		t.Errorf("colorbar height = %v, want 0.1", plan.Rows[1].Height)
	}
	if plan.Rows[2].Height != 1.0 {
		t.Errorf("loop height = %v, want 1", plan.Rows[2].Height)
	}
	if plan.Rows[4].Height != 1.0 {
		t.Errorf("signal height = %v, want trackSize/5 = 1", plan.Rows[4].Height)
	}

	wantTotal := 5.0 + 0.1 + 2*1.0 + 6*1.0
	if plan.TotalHeight != wantTotal {
		t.Errorf("TotalHeight = %v, want %v", plan.TotalHeight, wantTotal)
	}
}

func TestPlanRowsMinimal(t *testing.T) {
	plan := PlanRows(Counts{Heatmap: true}, 5.0)
	if len(plan.Rows) != 2 {
		t.Fatalf("PlanRows() produced %d rows, want heatmap+colorbar only", len(plan.Rows))
	}
	if plan.Rows[0].Kind != RowHeatmap || plan.Rows[1].Kind != RowColorbar {
		t.Errorf("rows = %v, %v", plan.Rows[0].Kind, plan.Rows[1].Kind)
	}
}

func TestPlanRowsSlotNumbering(t *testing.T) {
	plan := PlanRows(Counts{Heatmap: true, SignalPrimary: 2, SignalSecondary: 2, IntervalPrimary: 1}, 5.0)

	var signalSlots, intervalSlots []int
	for _, r := range plan.Rows {
		switch r.Kind {
		case RowSignal:
			signalSlots = append(signalSlots, r.Slot)
		case RowInterval:
			intervalSlots = append(intervalSlots, r.Slot)
		}
	}
	for i, s := range signalSlots {
		if s != i {
			t.Errorf("signal slot %d numbered %d", i, s)
		}
	}
	// Interval slots restart from zero; they index a separate payload list.
	if len(intervalSlots) != 1 || intervalSlots[0] != 0 {
		t.Errorf("interval slots = %v, want [0]", intervalSlots)
	}
}

func TestPlanRowsHorizontalPairs(t *testing.T) {
	plan := PlanRows(Counts{
		LoopPrimary:     true,
		LoopSecondary:   true,
		SignalPrimary:   2,
		SignalSecondary: 2,
		IntervalPrimary: 2,
		IntervalSecond:  1,
		Gene:            true,
		Horizontal:      true,
	}, 5.0)

	// One loop row for both groups, one signal row per pair, interval
	// rows sized by the larger group, one gene row.
	wantKinds := []RowKind{
		RowLoop,
		RowSignal, RowSignal,
		RowInterval, RowInterval,
		RowGene,
	}
	if len(plan.Rows) != len(wantKinds) {
		t.Fatalf("PlanRows() produced %d rows, want %d", len(plan.Rows), len(wantKinds))
	}
	for i, r := range plan.Rows {
		if r.Kind != wantKinds[i] {
			t.Errorf("row %d kind = %v, want %v", i, r.Kind, wantKinds[i])
		}
	}
	// Slots restart per kind and pair across groups.
	if plan.Rows[1].Slot != 0 || plan.Rows[2].Slot != 1 {
		t.Errorf("signal slots = %d, %d, want 0, 1", plan.Rows[1].Slot, plan.Rows[2].Slot)
	}
	if plan.Rows[3].Slot != 0 || plan.Rows[4].Slot != 1 {
		t.Errorf("interval slots = %d, %d, want 0, 1", plan.Rows[3].Slot, plan.Rows[4].Slot)
	}
}

func TestPlanRowsTracksOnly(t *testing.T) {
	plan := PlanRows(Counts{SignalPrimary: 1, Gene: true}, 5.0)
	if len(plan.Rows) != 2 {
		t.Fatalf("PlanRows() produced %d rows, want 2 without heatmap", len(plan.Rows))
	}
	if plan.Rows[0].Kind != RowSignal || plan.Rows[1].Kind != RowGene {
		t.Errorf("rows = %v, %v", plan.Rows[0].Kind, plan.Rows[1].Kind)
	}
}
