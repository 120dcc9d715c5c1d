package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bioplotkit/hicfig/pkg/figure"
	"github.com/bioplotkit/hicfig/pkg/render"
)

// tracksOpts holds the command-line flags for the tracks command.
type tracksOpts struct {
	region     string
	tracksFile string
	layout     string
	trackSize  float64
	genes      string
	output     string
	width      float64
	dpi        int
}

// newTracksCmd creates the tracks command for rendering stacked 1D tracks
// without a contact matrix.
func newTracksCmd() *cobra.Command {
	opts := tracksOpts{
		layout:    figure.LayoutVertical,
		trackSize: figure.DefaultTrackSize,
	}

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "Render 1D genomic tracks without a contact matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTracks(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.region, "region", "r", "", "genomic region, e.g. chr2:10000000-12000000 (required)")
	cmd.Flags().StringVarP(&opts.tracksFile, "tracks", "t", "", "TOML track config file (required)")
	cmd.Flags().StringVar(&opts.layout, "layout", opts.layout, "track arrangement: vertical (default), horizontal")
	cmd.Flags().Float64Var(&opts.trackSize, "track-size", opts.trackSize, "relative track scale")
	cmd.Flags().StringVar(&opts.genes, "genes", "", "comma-separated gene names to label (default: all)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "tracks.png", "output file: .png, .pdf, or .svg")
	cmd.Flags().Float64Var(&opts.width, "width", 6.0, "figure width in inches")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 96, "raster resolution for PNG output")

	cobra.CheckErr(cmd.MarkFlagRequired("region"))
	cobra.CheckErr(cmd.MarkFlagRequired("tracks"))

	return cmd
}

func runTracks(ctx context.Context, opts *tracksOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	tracks, err := loadTracks(opts.tracksFile)
	if err != nil {
		return err
	}

	fig, err := figure.NewBuilder(logger).Build(ctx, figure.Options{
		Region:     opts.region,
		TracksOnly: true,
		Layout:     opts.layout,
		TrackSize:  opts.trackSize,
		Genes:      splitList(opts.genes),
		Tracks:     tracks,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if err := render.WriteFile(fig, opts.output, render.Options{Width: opts.width, DPI: opts.dpi}); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", opts.output))
	fmt.Println(successLine("wrote %s", StyleHighlight.Render(opts.output)))
	return nil
}
