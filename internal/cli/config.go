package cli

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/track"
)

// trackConfig is one [[tracks]] entry of a figure config file.
type trackConfig struct {
	Kind  string `toml:"kind"`
	Path  string `toml:"path"`
	Label string `toml:"label"`
	Color string `toml:"color"`
	Group string `toml:"group"`
}

// figureConfig is the TOML figure description consumed by --tracks.
type figureConfig struct {
	Tracks []trackConfig `toml:"tracks"`
}

var trackKinds = map[string]track.Kind{
	"signal":   track.Signal,
	"interval": track.Interval,
	"loop":     track.Loop,
	"gene":     track.Gene,
}

var trackGroups = map[string]track.Group{
	"":          track.Primary,
	"primary":   track.Primary,
	"secondary": track.Secondary,
}

// namedColors covers the handful of names accepted alongside hex codes.
var namedColors = map[string]color.Color{
	"black":  color.Black,
	"red":    color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"blue":   color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"green":  color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"orange": color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"purple": color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"gray":   color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
}

// loadTracks reads a TOML figure config and builds the track set in file
// order, which fixes the row order within each kind and group.
func loadTracks(path string) (*track.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading track config %s", path)
	}
	var cfg figureConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing track config %s", path)
	}

	set := &track.Set{}
	for i, tc := range cfg.Tracks {
		kind, ok := trackKinds[strings.ToLower(tc.Kind)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"track %d: unknown kind %q (must be signal, interval, loop, or gene)", i+1, tc.Kind)
		}
		group, ok := trackGroups[strings.ToLower(tc.Group)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"track %d: unknown group %q (must be primary or secondary)", i+1, tc.Group)
		}
		if tc.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "track %d: path is required", i+1)
		}
		c, err := parseColor(tc.Color)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "track %d", i+1)
		}
		set.Add(track.Track{
			Kind:  kind,
			Path:  tc.Path,
			Label: tc.Label,
			Color: c,
			Group: group,
		})
	}
	return set, nil
}

// parseColor accepts #rrggbb, #rrggbbaa, or a named color. Empty input
// falls back to black.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return color.Black, nil
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	var c color.RGBA
	c.A = 0xff
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return nil, fmt.Errorf("invalid color %q", s)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return nil, fmt.Errorf("invalid color %q", s)
		}
	default:
		return nil, fmt.Errorf("invalid color %q (use #rrggbb or a named color)", s)
	}
	return c, nil
}
