package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bioplotkit/hicfig/internal/server"
	"github.com/bioplotkit/hicfig/pkg/figure"
	"github.com/bioplotkit/hicfig/pkg/matrix"
	"github.com/bioplotkit/hicfig/pkg/render"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	matrixA    string
	matrixB    string
	resolution int
	operation  string
	method     string
	tracksFile string
	layout     string
	trackSize  float64
	width      float64
	dpi        int
}

// newServeCmd creates the serve command, which keeps one process running
// and renders a figure per HTTP region query against fixed data files.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:       ":8080",
		resolution: figure.DefaultResolution,
		operation:  string(matrix.OpSubtract),
		method:     string(matrix.MethodRaw),
		layout:     figure.LayoutVertical,
		trackSize:  figure.DefaultTrackSize,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve figures over HTTP for repeated region queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.matrixA, "matrix-a", "", "primary contact matrix file (required)")
	cmd.Flags().StringVar(&opts.matrixB, "matrix-b", "", "control contact matrix file")
	cmd.Flags().IntVar(&opts.resolution, "resolution", opts.resolution, "matrix bin size in bp")
	cmd.Flags().StringVar(&opts.operation, "operation", opts.operation, "matrix comparison: subtract (default), divide")
	cmd.Flags().StringVar(&opts.method, "method", opts.method, "divide method: raw (default), log2, add1, log2_add1")
	cmd.Flags().StringVarP(&opts.tracksFile, "tracks", "t", "", "TOML track config file")
	cmd.Flags().StringVar(&opts.layout, "layout", opts.layout, "track arrangement: vertical (default), horizontal")
	cmd.Flags().Float64Var(&opts.trackSize, "track-size", opts.trackSize, "relative heatmap height")
	cmd.Flags().Float64Var(&opts.width, "width", 6.0, "figure width in inches")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 96, "raster resolution for PNG output")

	cobra.CheckErr(cmd.MarkFlagRequired("matrix-a"))

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	base := figure.Options{
		Resolution: opts.resolution,
		MatrixA:    opts.matrixA,
		MatrixB:    opts.matrixB,
		Operation:  matrix.Op(opts.operation),
		Method:     matrix.Method(opts.method),
		Layout:     opts.layout,
		TrackSize:  opts.trackSize,
	}
	if opts.tracksFile != "" {
		tracks, err := loadTracks(opts.tracksFile)
		if err != nil {
			return err
		}
		base.Tracks = tracks
	}

	srv := server.New(base, render.Options{Width: opts.width, DPI: opts.dpi}, logger)
	return srv.ListenAndServe(ctx, opts.addr)
}
