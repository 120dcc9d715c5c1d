package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/figure"
	"github.com/bioplotkit/hicfig/pkg/genome"
	"github.com/bioplotkit/hicfig/pkg/layout"
	"github.com/bioplotkit/hicfig/pkg/matrix"
	"github.com/bioplotkit/hicfig/pkg/scale"
	"github.com/bioplotkit/hicfig/pkg/source"
	"github.com/bioplotkit/hicfig/pkg/track"
)

func testFigure() *figure.Figure {
	region := genome.Region{Chrom: "chr1", Start: 0, End: 4000}
	data := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			data.Set(i, j, float64(i-j))
		}
	}
	return &figure.Figure{
		Region: region,
		Plan: layout.PlanRows(layout.Counts{
			Heatmap:         true,
			LoopPrimary:     true,
			SignalPrimary:   1,
			IntervalPrimary: 1,
			Gene:            true,
		}, 5.0),
		Heatmap: figure.HeatmapPayload{
			Matrix:  &matrix.Contact{Region: region, Resolution: 1000, Data: data},
			VMin:    -3, VMax: 3, HasVLim: true,
		},
		Signals: []figure.SignalPayload{{
			Label:  "cov",
			Color:  color.RGBA{R: 0xcc, A: 0xff},
			Series: track.ValueSeries{Pos: []float64{0, 2000, 4000}, Val: []float64{1, 3, 2}},
			Bounds: scale.Bounds{Min: 1, Max: 3, Set: true},
		}},
		Loops: []figure.LoopPayload{{
			Color:   color.Black,
			Records: []source.LoopRecord{{Start1: 0, End1: 500, Start2: 3000, End2: 3500}},
		}},
		Ivals: []figure.IntervalPayload{{
			Color:   color.Black,
			Records: []source.IntervalRecord{{Start: 500, End: 1500}},
		}},
		Genes: &figure.GenePayload{
			Color: color.Black,
			Step:  0.5,
			Features: []layout.StackedGene{{
				Gene: source.GeneFeature{
					ID: "G1", Name: "ALPHA", Start: 100, End: 900,
					Exons: []source.Span{{Start: 100, End: 400}},
				},
			}},
		},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"figure.png", FormatPNG, false},
		{"out/Figure.PDF", FormatPDF, false},
		{"figure.svg", FormatSVG, false},
		{"figure.jpeg", "", true},
		{"figure", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if tt.wantErr {
			if errors.GetCode(err) != errors.ErrCodeUnsupportedFormat {
				t.Errorf("FormatFor(%q) error code = %v, want %v", tt.path, errors.GetCode(err), errors.ErrCodeUnsupportedFormat)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFor(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(testFigure(), &buf, FormatSVG, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Errorf("output does not look like SVG")
	}
	if !strings.Contains(out, "Mb") {
		t.Errorf("bottom axis should carry megabase tick labels")
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(testFigure(), &buf, FormatPNG, Options{Width: 4, DPI: 72}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	// PNG magic bytes.
	if buf.Len() < 8 || !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("output does not look like PNG (%d bytes)", buf.Len())
	}
}

func TestClampSpan(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		lo, hi     float64
		wantLo     float64
		wantHi     float64
		wantOK     bool
	}{
		{"inside", 100, 900, 0, 2000, 100, 900, true},
		{"straddles right", 1500, 2500, 0, 2000, 1500, 2000, true},
		{"straddles left", -500, 300, 0, 2000, 0, 300, true},
		{"spans whole range", -500, 9000, 0, 2000, 0, 2000, true},
		{"entirely right", 3000, 4000, 0, 2000, 0, 0, false},
		{"entirely left", -900, -100, 0, 2000, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := clampSpan(tt.start, tt.end, tt.lo, tt.hi)
			if ok != tt.wantOK || lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("clampSpan(%v, %v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.start, tt.end, lo, hi, ok, tt.wantLo, tt.wantHi, tt.wantOK)
			}
		})
	}
}

func TestWriteStraddlingGene(t *testing.T) {
	// A gene reaching past the region boundary renders with its body and
	// exons truncated at the window edge rather than painting into the
	// neighboring rows.
	fig := testFigure()
	fig.Genes.Features = append(fig.Genes.Features, layout.StackedGene{
		Gene: source.GeneFeature{
			ID: "G2", Name: "BETA", Start: 3500, End: 5200,
			Exons: []source.Span{{Start: 3600, End: 4200}},
		},
		Offset: 0.5,
	})
	var buf bytes.Buffer
	if err := Write(fig, &buf, FormatSVG, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("output does not look like SVG")
	}
}

func TestWriteTwoColumnSVG(t *testing.T) {
	region := genome.Region{Chrom: "chr1", Start: 0, End: 4000}
	fig := &figure.Figure{
		Region:    region,
		TwoColumn: true,
		Plan: layout.PlanRows(layout.Counts{
			SignalPrimary:   1,
			SignalSecondary: 1,
			IntervalPrimary: 1,
			Gene:            true,
			Horizontal:      true,
		}, 5.0),
		Signals: []figure.SignalPayload{
			{
				Label: "case", Color: color.Black, Group: track.Primary,
				Series: track.ValueSeries{Pos: []float64{0, 2000}, Val: []float64{1, 2}},
				Bounds: scale.Bounds{Min: 1, Max: 4, Set: true},
			},
			{
				Label: "ctrl", Color: color.Black, Group: track.Secondary,
				Series: track.ValueSeries{Pos: []float64{0, 2000}, Val: []float64{3, 4}},
				Bounds: scale.Bounds{Min: 1, Max: 4, Set: true},
			},
		},
		Ivals: []figure.IntervalPayload{{
			Color:   color.Black,
			Group:   track.Primary,
			Records: []source.IntervalRecord{{Start: 500, End: 1500}},
		}},
		Genes: &figure.GenePayload{
			Color: color.Black,
			Step:  0.5,
			Features: []layout.StackedGene{{
				Gene: source.GeneFeature{ID: "G1", Name: "ALPHA", Start: 100, End: 900},
			}},
		},
	}

	var buf bytes.Buffer
	if err := Write(fig, &buf, FormatSVG, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Errorf("output does not look like SVG")
	}
	// Gene labels repeat: once per column.
	if got := strings.Count(out, "ALPHA"); got != 2 {
		t.Errorf("gene label appears %d times, want once per column", got)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(testFigure(), &buf, "bmp", Options{})
	if errors.GetCode(err) != errors.ErrCodeUnsupportedFormat {
		t.Errorf("Write() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedFormat)
	}
}
