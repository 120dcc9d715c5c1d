package cli

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/track"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadTracks(t *testing.T) {
	path := writeConfig(t, `
[[tracks]]
kind = "signal"
path = "case.bw"
label = "H3K27ac case"
color = "#1f77b4"

[[tracks]]
kind = "signal"
path = "ctrl.bw"
label = "H3K27ac control"
color = "blue"
group = "secondary"

[[tracks]]
kind = "gene"
path = "genes.gtf"
`)
	set, err := loadTracks(path)
	if err != nil {
		t.Fatalf("loadTracks() error = %v", err)
	}
	all := set.All()
	if len(all) != 3 {
		t.Fatalf("loaded %d tracks, want 3", len(all))
	}
	if all[0].Kind != track.Signal || all[0].Group != track.Primary {
		t.Errorf("track 0 = %+v, want primary signal", all[0])
	}
	if all[1].Group != track.Secondary {
		t.Errorf("track 1 group = %v, want secondary", all[1].Group)
	}
	if got := all[0].Color; got != (color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}) {
		t.Errorf("track 0 color = %v", got)
	}
	// Unset color falls back to black.
	if all[2].Color != color.Black {
		t.Errorf("track 2 color = %v, want black default", all[2].Color)
	}
}

func TestLoadTracksErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown kind", "[[tracks]]\nkind = \"wiggle\"\npath = \"a.bw\"\n"},
		{"unknown group", "[[tracks]]\nkind = \"signal\"\npath = \"a.bw\"\ngroup = \"third\"\n"},
		{"missing path", "[[tracks]]\nkind = \"signal\"\n"},
		{"bad color", "[[tracks]]\nkind = \"signal\"\npath = \"a.bw\"\ncolor = \"#zzz\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadTracks(writeConfig(t, tt.content))
			if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
				t.Errorf("loadTracks() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"", color.Black, false},
		{"red", namedColors["red"], false},
		{"#ff0000", color.RGBA{R: 0xff, A: 0xff}, false},
		{"#ff000080", color.RGBA{R: 0xff, A: 0x80}, false},
		{"#f00", nil, true},
		{"chartreuse", nil, true},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseColor(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseColor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(""); got != nil {
		t.Errorf("splitList(\"\") = %v, want nil", got)
	}
	got := splitList("SOX2, NANOG ,,POU5F1")
	want := []string{"SOX2", "NANOG", "POU5F1"}
	if len(got) != len(want) {
		t.Fatalf("splitList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
