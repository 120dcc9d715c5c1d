package scale

import (
	"math"
	"testing"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/track"
)

func series(vals ...float64) track.ValueSeries {
	pos := make([]float64, len(vals))
	for i := range vals {
		pos[i] = float64(i * 100)
	}
	return track.ValueSeries{Pos: pos, Val: vals}
}

func TestResolvePaired(t *testing.T) {
	a := []track.ValueSeries{series(1, 5, 3), series(0, 2)}
	b := []track.ValueSeries{series(-2, 4), series(10)}

	got, err := Resolve(a, b, ModePaired)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []Bounds{
		{Min: -2, Max: 5, Set: true},
		{Min: 0, Max: 10, Set: true},
	}
	if len(got) != len(want) {
		t.Fatalf("Resolve() returned %d slots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestResolvePairedLengthMismatch(t *testing.T) {
	a := []track.ValueSeries{series(1)}
	var b []track.ValueSeries

	_, err := Resolve(a, b, ModePaired)
	if errors.GetCode(err) != errors.ErrCodeInvalidParameter {
		t.Errorf("Resolve() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParameter)
	}
}

func TestResolveSequential(t *testing.T) {
	a := []track.ValueSeries{series(1, 2), series(3)}
	b := []track.ValueSeries{series(-1, -5)}

	got, err := Resolve(a, b, ModeSequential)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Resolve() returned %d slots, want len(a)+len(b)=3", len(got))
	}
	if got[0] != (Bounds{Min: 1, Max: 2, Set: true}) {
		t.Errorf("slot 0 = %+v", got[0])
	}
	if got[2] != (Bounds{Min: -5, Max: -1, Set: true}) {
		t.Errorf("slot 2 = %+v", got[2])
	}
}

func TestResolveIgnoresNonFinite(t *testing.T) {
	a := []track.ValueSeries{series(math.NaN(), 2, math.Inf(1))}
	got, err := Resolve(a, nil, ModeSequential)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got[0] != (Bounds{Min: 2, Max: 2, Set: true}) {
		t.Errorf("slot 0 = %+v, want finite-only bounds (2,2)", got[0])
	}
}

func TestResolveEmptySlot(t *testing.T) {
	a := []track.ValueSeries{{}}
	b := []track.ValueSeries{{}}
	got, err := Resolve(a, b, ModePaired)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got[0].Set {
		t.Errorf("slot 0 = %+v, want unset for empty contributors", got[0])
	}
}

func TestResolveUnknownMode(t *testing.T) {
	_, err := Resolve(nil, nil, "global")
	if errors.GetCode(err) != errors.ErrCodeInvalidParameter {
		t.Errorf("Resolve() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParameter)
	}
}
